// Package catalog keeps a SQLite log of rendered cards so the server can list
// what a batch produced.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/youruser/cardforge/internal/util"
)

const schema = `
CREATE TABLE IF NOT EXISTS renders (
    lang        TEXT NOT NULL,
    faction     TEXT NOT NULL,
    name        TEXT NOT NULL,
    path        TEXT NOT NULL,
    copies      INTEGER NOT NULL DEFAULT 1,
    unresolved  INTEGER NOT NULL DEFAULT 0,
    rendered_at INTEGER NOT NULL,  -- UnixNano
    PRIMARY KEY (lang, faction, name)
);

CREATE INDEX IF NOT EXISTS idx_renders_lang ON renders(lang);
`

// Entry is one rendered card.
type Entry struct {
	Lang       string    `json:"lang"`
	Faction    string    `json:"faction"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Copies     int       `json:"copies"`
	Unresolved int       `json:"unresolved"`
	RenderedAt time.Time `json:"rendered_at"`
}

type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path.
func Open(path string) (*Catalog, error) {
	if path != ":memory:" {
		if err := util.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record inserts e, replacing an earlier render of the same card.
func (c *Catalog) Record(ctx context.Context, e Entry) error {
	if e.RenderedAt.IsZero() {
		e.RenderedAt = time.Now()
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO renders (lang, faction, name, path, copies, unresolved, rendered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Lang, e.Faction, e.Name, e.Path, e.Copies, e.Unresolved, e.RenderedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record %s/%s/%s: %w", e.Lang, e.Faction, e.Name, err)
	}
	return nil
}

// List returns the entries of lang ordered by faction then name. An empty
// lang lists every language.
func (c *Catalog) List(ctx context.Context, lang string) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT lang, faction, name, path, copies, unresolved, rendered_at
		FROM renders
		WHERE ? = '' OR lang = ?
		ORDER BY lang, faction, name`,
		lang, lang,
	)
	if err != nil {
		return nil, fmt.Errorf("list renders: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e  Entry
			ts int64
		)
		if err := rows.Scan(&e.Lang, &e.Faction, &e.Name, &e.Path, &e.Copies, &e.Unresolved, &ts); err != nil {
			return nil, err
		}
		e.RenderedAt = time.Unix(0, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}
