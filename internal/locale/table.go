// Package locale loads the keyword tables used to resolve {{text:..}} and
// {{icon:..}} placeholders.
package locale

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Section names in a keyword file.
const (
	SectionText = "text"
	SectionIcon = "icon"
)

// GlyphTable maps keyword keys to literal text or icon asset references.
// Nested keys are flattened with dots: text: {unit: {ally: ..}} is "unit.ally".
type GlyphTable struct {
	Text map[string]string
	Icon map[string]string
}

// LookupText returns the text replacement for key.
func (g *GlyphTable) LookupText(key string) (string, bool) {
	if g == nil {
		return "", false
	}
	v, ok := g.Text[key]
	return v, ok
}

// LookupIcon returns the icon asset reference for key.
func (g *GlyphTable) LookupIcon(key string) (string, bool) {
	if g == nil {
		return "", false
	}
	v, ok := g.Icon[key]
	return v, ok
}

// Keys returns the sorted keys of a section, for listings.
func (g *GlyphTable) Keys(section string) []string {
	var m map[string]string
	switch section {
	case SectionText:
		m = g.Text
	case SectionIcon:
		m = g.Icon
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromMap builds a table from a decoded keyword document.
func FromMap(doc map[string]any) *GlyphTable {
	g := &GlyphTable{
		Text: map[string]string{},
		Icon: map[string]string{},
	}
	if sec, ok := asMap(doc[SectionText]); ok {
		flatten("", sec, g.Text)
	}
	if sec, ok := asMap(doc[SectionIcon]); ok {
		flatten("", sec, g.Icon)
	}
	return g
}

func flatten(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := asMap(v); ok {
			flatten(key, sub, out)
			continue
		}
		if v == nil {
			continue
		}
		out[key] = fmt.Sprint(v)
	}
}

// ReadFile decodes a YAML or JSON keyword file. A missing file yields an
// empty document.
func ReadFile(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// Load reads base and the language override and merges them into a table.
// Either file may be absent.
func Load(basePath, overridePath string) (*GlyphTable, error) {
	base, err := ReadFile(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading base keywords: %w", err)
	}
	override, err := ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("loading override keywords: %w", err)
	}
	return FromMap(Merge(base, override)), nil
}
