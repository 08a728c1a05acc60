package config

import "math"

// Card dimensions in pixels.
const (
	DefaultWidth  = 750
	DefaultHeight = 1050
	DefaultDPI    = 300
)

// Default returns the built-in configuration.
func Default() *Config {
	w, h := float64(DefaultWidth), float64(DefaultHeight)

	return &Config{
		Canvas: Canvas{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Background: "red",
			DPI:        DefaultDPI,
		},
		Layers: map[string]Layer{
			LayerCore:      {X: 0, Y: 0, Fit: FitFill},
			LayerCharacter: {X: 0, Y: math.Floor(h * 0.1), Fit: FitCrop},
			LayerFaction:   {X: math.Ceil(w * 0.071), Y: math.Ceil(h * 0.05), Fit: FitThumbnail, Centered: true},
			LayerPosition:  {X: math.Floor(w * 0.929), Y: math.Ceil(h * 0.05), Fit: FitThumbnail, Centered: true},
			LayerQR:        {X: math.Floor(w * 0.929), Y: math.Floor(h * 0.95), Fit: FitNone, Centered: true},
		},
		Fields: map[string]Field{
			FieldTitle:      {X: 0.5, Y: 0.05, Size: 48, Color: "black", Font: "font/Cinzel-Bold.ttf", Align: "center"},
			FieldCount:      {X: 0.83, Y: 0.015, Size: 36, Color: "black", Font: "font/Cinzel-ExtraBold.ttf", Align: "center"},
			FieldScore:      {X: 0.5, Y: 0.635, Size: 160, Color: "black", Font: "font/Cinzel-Bold.ttf", Align: "center"},
			FieldEffectType: {X: 0.5, Y: 0.77, Size: 48, Color: "black", Font: "font/Cinzel-Bold.ttf", Align: "center"},
			FieldEffect:     {X: 0.5, Y: 0.88, Size: 60, Color: "black", Font: "font/Gabriola.ttf", Align: "center", Wrap: true},
			FieldLegend:     {X: 0.5, Y: 0.985, Size: 24, Color: "black", Font: "font/Gabriola.ttf", Align: "center"},
		},
		Text: Text{
			PlaceholderWidth: 5,
			IconScale:        1.2,
			WrapRatio:        0.9,
			UnderlineWidth:   2,
		},
		Assets: Assets{
			Root:      "sprites",
			Character: "Images/{faction}/{index}.png",
			Default:   "Images/default.png",
			Model:     "Models/{faction}.png",
			Faction:   "Factions/Large/{faction}.png",
			Position:  "Position/{position} LARGE.png",
			Variants:  8,
		},
		QR: QR{
			Content: "{lang}:{faction}:{name}",
			Size:    96,
		},
	}
}
