package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	tests := []struct {
		layer string
		x, y  int
	}{
		{LayerCore, 0, 0},
		{LayerCharacter, 0, 105},
		{LayerFaction, 54, 53},
		{LayerPosition, 696, 53},
	}
	for _, tt := range tests {
		l, err := c.Layer(tt.layer)
		if err != nil {
			t.Fatalf("Layer(%q): %v", tt.layer, err)
		}
		if x, y := l.Point(c.Canvas.Width, c.Canvas.Height); x != tt.x || y != tt.y {
			t.Errorf("Layer(%q).Point = (%d, %d), want (%d, %d)", tt.layer, x, y, tt.x, tt.y)
		}
	}
}

func TestField(t *testing.T) {
	c := Default()

	f, err := c.Field(FieldEffect)
	if err != nil {
		t.Fatalf("Field(effect): %v", err)
	}
	if !f.Wrap || f.Size != 60 {
		t.Errorf("Field(effect) = %+v", f)
	}

	_, err = c.Field("subtitle")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Field(subtitle) error = %v, want ErrUnknownField", err)
	}
	if !strings.Contains(err.Error(), "effect_type") {
		t.Errorf("error %q should list the valid fields", err)
	}
}

func TestFieldCentering(t *testing.T) {
	tests := []struct {
		center       string
		wantH, wantV bool
	}{
		{"", true, true},
		{CenterBoth, true, true},
		{CenterHorizontal, true, false},
		{CenterVertical, false, true},
		{CenterNone, false, false},
	}
	for _, tt := range tests {
		f := Field{Center: tt.center}
		if f.HCenter() != tt.wantH || f.VCenter() != tt.wantV {
			t.Errorf("Center %q: HCenter=%v VCenter=%v, want %v %v", tt.center, f.HCenter(), f.VCenter(), tt.wantH, tt.wantV)
		}
	}
}

func TestLayerPointRelative(t *testing.T) {
	l := Layer{X: 0.5, Y: 0.25, Relative: true}
	if x, y := l.Point(750, 1050); x != 375 || y != 262 {
		t.Errorf("Point = (%d, %d), want (375, 262)", x, y)
	}
}

func TestParseMergesOverDefaults(t *testing.T) {
	c, err := Parse([]byte(`
canvas:
  width: 500
fields:
  title:
    size: 30
  banner:
    x: 0.5
    y: 0.5
    font: goregular
    size: 20
text:
  icon_scale: 1.5
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if c.Canvas.Width != 500 || c.Canvas.Height != DefaultHeight {
		t.Errorf("Canvas = %+v", c.Canvas)
	}
	title := c.Fields[FieldTitle]
	if title.Size != 30 || title.Font != "font/Cinzel-Bold.ttf" || title.Y != 0.05 {
		t.Errorf("title = %+v, want size override with defaults kept", title)
	}
	if _, err := c.Field("banner"); err != nil {
		t.Errorf("Field(banner): %v", err)
	}
	if c.Text.IconScale != 1.5 || c.Text.PlaceholderWidth != 5 {
		t.Errorf("Text = %+v", c.Text)
	}
	if len(c.Layers) != len(Default().Layers) {
		t.Errorf("Layers = %v", c.Layers)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "canvas: ["},
		{"zero width", "canvas: {width: 0}"},
		{"bad fit", "layers: {core: {fit: stretch}}"},
		{"bad align", "fields: {title: {align: justify}}"},
		{"no size", "fields: {extra: {font: goregular}}"},
		{"wrap ratio", "text: {wrap_ratio: 2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.doc)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	if err != nil || c.Canvas.Width != DefaultWidth {
		t.Fatalf("Load(\"\") = %+v, %v", c, err)
	}

	path := filepath.Join(t.TempDir(), "properties.yaml")
	if err := os.WriteFile(path, []byte("canvas: {dpi: 600}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Canvas.DPI != 600 {
		t.Errorf("DPI = %d, want 600", c.Canvas.DPI)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) succeeded, want error")
	}
}
