package cards

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeywordsFile is the per-language keyword table. It lives next to the card
// files and is not card data.
const KeywordsFile = "keywords.yaml"

// File is the shape of a card source document.
type File struct {
	Cards []Card `json:"cards" yaml:"cards"`
}

func isCardFile(name string) bool {
	if name == KeywordsFile || name == "keywords.yml" {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadDir loads every card file under dir, in lexical path order.
func LoadDir(dir string) ([]Card, error) {
	var all []Card
	var found bool
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isCardFile(d.Name()) {
			return nil
		}
		found = true
		cs, err := LoadFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		all = append(all, cs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no card files found in %s", dir)
	}
	return all, nil
}

// LoadFile reads one JSON or YAML card document. Cards without a faction take
// the file name (human.json holds human cards).
func LoadFile(path string) ([]Card, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &doc)
	} else {
		err = yaml.Unmarshal(b, &doc)
	}
	if err != nil {
		return nil, err
	}

	faction := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := range doc.Cards {
		c := &doc.Cards[i]
		c.Index = i
		if c.Faction == "" {
			c.Faction = faction
		}
		if c.Name == "" {
			return nil, fmt.Errorf("card %d has no name", i)
		}
	}
	return doc.Cards, nil
}

// Languages lists the translation directories under root, sorted.
func Languages(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
