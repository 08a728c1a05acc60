package cards

import (
	"path/filepath"

	"github.com/youruser/cardforge/internal/locale"
)

// Sources is the data tree: base keywords at the root and one directory of
// cards and keyword overrides per language under translation/.
//
//	sources/keywords.yaml
//	sources/translation/<lang>/keywords.yaml
//	sources/translation/<lang>/**/*.json
type Sources struct {
	Root string
}

func (s Sources) TranslationDir(lang string) string {
	return filepath.Join(s.Root, "translation", lang)
}

// Languages lists the available translations.
func (s Sources) Languages() ([]string, error) {
	return Languages(filepath.Join(s.Root, "translation"))
}

// Cards loads every card of lang.
func (s Sources) Cards(lang string) ([]Card, error) {
	return LoadDir(s.TranslationDir(lang))
}

// Keywords loads the base keyword table merged with the lang override. An
// empty lang gives the base table alone.
func (s Sources) Keywords(lang string) (*locale.GlyphTable, error) {
	base := filepath.Join(s.Root, KeywordsFile)
	if lang == "" {
		return locale.Load(base, "")
	}
	return locale.Load(base, filepath.Join(s.TranslationDir(lang), KeywordsFile))
}
