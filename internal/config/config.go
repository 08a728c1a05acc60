// Package config holds the render configuration: canvas size, layer anchors,
// the per-field text layout table, asset path conventions and text tuning.
//
// A Config is built once (Default or Load) and then only read. Renderers and
// assemblers take it at construction.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/youruser/cardforge/internal/locale"
)

// ErrUnknownField is returned when a text field has no layout entry.
var ErrUnknownField = errors.New("unknown text field")

// Fit policy names.
const (
	FitNone      = "none"
	FitFill      = "fill"
	FitThumbnail = "thumbnail"
	FitCrop      = "crop"
)

// Centering modes for text fields.
const (
	CenterBoth       = "both"
	CenterHorizontal = "horizontal"
	CenterVertical   = "vertical"
	CenterNone       = "none"
)

// Layer names used by the card pipeline.
const (
	LayerCharacter = "character"
	LayerCore      = "core"
	LayerFaction   = "faction"
	LayerPosition  = "position"
	LayerQR        = "qr"
)

// Field names used by the card pipeline.
const (
	FieldTitle      = "title"
	FieldCount      = "count"
	FieldScore      = "score"
	FieldEffectType = "effect_type"
	FieldEffect     = "effect"
	FieldLegend     = "legend"
)

type Config struct {
	Canvas Canvas           `yaml:"canvas"`
	Layers map[string]Layer `yaml:"layers"`
	Fields map[string]Field `yaml:"fields"`
	Text   Text             `yaml:"text"`
	Assets Assets           `yaml:"assets"`
	QR     QR               `yaml:"qr"`
}

type Canvas struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	DPI        int    `yaml:"dpi"`
	// Frame draws the procedural card frame before any layer.
	Frame bool `yaml:"frame"`
}

// Layer anchors an image layer. X and Y are pixels, or fractions of the
// canvas when Relative is set. Width/Height bound the fit; zero means the
// canvas size.
type Layer struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Relative bool    `yaml:"relative"`
	Fit      string  `yaml:"fit"`
	Centered bool    `yaml:"centered"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
}

// Point resolves the anchor against a canvas size.
func (l Layer) Point(w, h int) (int, int) {
	if l.Relative {
		return int(math.Floor(l.X * float64(w))), int(math.Floor(l.Y * float64(h)))
	}
	return int(l.X), int(l.Y)
}

// Field is the text layout of one named field. X and Y are fractions of the
// canvas size.
type Field struct {
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	Font     string   `yaml:"font"`
	Size     float64  `yaml:"size"`
	Color    string   `yaml:"color"`
	Align    string   `yaml:"align"`
	Center   string   `yaml:"center"`
	Wrap     bool     `yaml:"wrap"`
	Keywords []string `yaml:"keywords"`
}

// HCenter reports whether the block is centered horizontally on the anchor.
func (f Field) HCenter() bool {
	return f.Center == "" || f.Center == CenterBoth || f.Center == CenterHorizontal
}

// VCenter reports whether the block is centered vertically on the anchor.
func (f Field) VCenter() bool {
	return f.Center == "" || f.Center == CenterBoth || f.Center == CenterVertical
}

// Text holds hand-tuned constants that depend on the fonts in use.
type Text struct {
	// PlaceholderWidth is the number of blanks reserved per inline icon.
	PlaceholderWidth int `yaml:"placeholder_width"`
	// IconScale sizes inline icons relative to the font size.
	IconScale float64 `yaml:"icon_scale"`
	// WrapRatio is the share of the canvas width wrapped text may use.
	WrapRatio      float64 `yaml:"wrap_ratio"`
	UnderlineWidth float64 `yaml:"underline_width"`
}

// Assets describes the sprite directory convention. Patterns use {faction},
// {index} and {position}.
type Assets struct {
	Root      string `yaml:"root"`
	Character string `yaml:"character"`
	Default   string `yaml:"default"`
	Model     string `yaml:"model"`
	Faction   string `yaml:"faction"`
	Position  string `yaml:"position"`
	// Variants is the number of character images per faction.
	Variants int `yaml:"variants"`
}

// QR stamps a QR code built from Content ({name}, {faction}, {lang}).
type QR struct {
	Enabled bool   `yaml:"enabled"`
	Content string `yaml:"content"`
	Size    int    `yaml:"size"`
}

// Field returns the layout for name.
func (c *Config) Field(name string) (Field, error) {
	f, ok := c.Fields[name]
	if !ok {
		return Field{}, fmt.Errorf("%w %q, valid fields are: %s", ErrUnknownField, name, strings.Join(c.FieldNames(), ", "))
	}
	return f, nil
}

// FieldNames returns the configured field names, sorted.
func (c *Config) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for name := range c.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layer returns the anchor for name.
func (c *Config) Layer(name string) (Layer, error) {
	l, ok := c.Layers[name]
	if !ok {
		return Layer{}, fmt.Errorf("unknown layer %q", name)
	}
	return l, nil
}

// Validate checks the invariants the renderer relies on.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	for name, l := range c.Layers {
		switch l.Fit {
		case "", FitNone, FitFill, FitThumbnail, FitCrop:
		default:
			return fmt.Errorf("layer %q: unknown fit %q", name, l.Fit)
		}
	}
	for name, f := range c.Fields {
		if f.Font == "" {
			return fmt.Errorf("field %q: font is required", name)
		}
		if f.Size <= 0 {
			return fmt.Errorf("field %q: size must be positive", name)
		}
		switch f.Align {
		case "", "left", "center", "right":
		default:
			return fmt.Errorf("field %q: unknown align %q", name, f.Align)
		}
		switch f.Center {
		case "", CenterBoth, CenterHorizontal, CenterVertical, CenterNone:
		default:
			return fmt.Errorf("field %q: unknown center mode %q", name, f.Center)
		}
	}
	if c.Text.PlaceholderWidth <= 0 {
		return errors.New("text.placeholder_width must be positive")
	}
	if c.Text.IconScale <= 0 {
		return errors.New("text.icon_scale must be positive")
	}
	if c.Text.WrapRatio <= 0 || c.Text.WrapRatio > 1 {
		return fmt.Errorf("text.wrap_ratio %v must be in (0, 1]", c.Text.WrapRatio)
	}
	return nil
}

// Load reads a YAML properties file and deep-merges it over Default, so a
// file only needs the values it changes. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse is Load for an in-memory document.
func Parse(b []byte) (*Config, error) {
	override := map[string]any{}
	if err := yaml.Unmarshal(b, &override); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}

	base, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	merged, err := yaml.Marshal(locale.Merge(base, override))
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(merged, &c); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid properties: %w", err)
	}
	return &c, nil
}

func toMap(c *Config) (map[string]any, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
