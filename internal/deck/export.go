package deck

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/youruser/cardforge/internal/util"
)

// ManifestFile is written next to the rendered cards of a faction.
const ManifestFile = "manifest.txt"

// ExportDeckText renders d as "Nx Name" lines sorted by name, preceded by a
// "# Name (faction)" header.
func ExportDeckText(d Deck) string {
	lines := []string{}
	switch {
	case d.Name != "" && d.Faction != "":
		lines = append(lines, "# "+d.Name+" ("+d.Faction+")")
	case d.Name != "" || d.Faction != "":
		lines = append(lines, "# "+d.Name+d.Faction)
	}

	names := make([]string, 0, len(d.Cards))
	for name := range d.Cards {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, strconv.Itoa(d.Cards[name])+"x "+name)
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteManifest writes d to dir/manifest.txt and returns the path.
func WriteManifest(dir string, d Deck) (string, error) {
	if err := util.EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, ManifestFile)
	return path, os.WriteFile(path, []byte(ExportDeckText(d)), 0o644)
}
