package render

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fogleman/gg"

	"github.com/youruser/cardforge/internal/config"
	imagepkg "github.com/youruser/cardforge/internal/image"
	"github.com/youruser/cardforge/internal/locale"
	"github.com/youruser/cardforge/internal/text"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(width int, fields map[string]config.Field) *config.Config {
	cfg := config.Default()
	cfg.Canvas.Width = width
	cfg.Canvas.Height = 400
	cfg.Fields = fields
	return cfg
}

func writeIcon(t *testing.T, root, name string, size int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 255, 255
	}
	if err := imagepkg.SavePNG(filepath.Join(root, name), img, 0); err != nil {
		t.Fatal(err)
	}
}

// measureWith measures the way the renderer's drawing context does.
func measureWith(t *testing.T, name string, size float64) func(string) float64 {
	t.Helper()
	face, err := NewFontCache("").Face(name, size)
	if err != nil {
		t.Fatal(err)
	}
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	return func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}
}

func inked(img *image.RGBA, bg color.Color) int {
	br, bgG, bb, _ := bg.RGBA()
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != br || g != bgG || bl != bb {
				n++
			}
		}
	}
	return n
}

func TestTextUnknownField(t *testing.T) {
	cfg := testConfig(300, map[string]config.Field{
		"title": {X: 0.5, Y: 0.5, Font: "goregular", Size: 20},
	})
	r := New(cfg, Options{Logger: discard})

	_, err := r.Text(imagepkg.NewCanvas(300, 400, color.White), "subtitle", "x", TextOptions{})
	if !errors.Is(err, config.ErrUnknownField) {
		t.Fatalf("Text(subtitle) error = %v, want ErrUnknownField", err)
	}
}

func TestTextCentersOnAnchor(t *testing.T) {
	cfg := testConfig(400, map[string]config.Field{
		"title": {X: 0.5, Y: 0.25, Font: "gobold", Size: 32, Color: "black", Align: "center"},
	})
	r := New(cfg, Options{Logger: discard})
	c := imagepkg.NewCanvas(400, 400, color.White)

	b, err := r.Text(c, "title", "Knight", TextOptions{})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}

	if math.Abs(b.X+b.Width/2-200) > 1 {
		t.Errorf("block x center = %.1f, want 200", b.X+b.Width/2)
	}
	if math.Abs(b.Y+b.Height/2-100) > 1 {
		t.Errorf("block y center = %.1f, want 100", b.Y+b.Height/2)
	}
	if inked(c.Image(), color.White) == 0 {
		t.Error("nothing drawn")
	}
}

func TestTextCenterNone(t *testing.T) {
	cfg := testConfig(400, map[string]config.Field{
		"count": {X: 0.1, Y: 0.1, Font: "goregular", Size: 20, Center: config.CenterNone},
	})
	b, err := New(cfg, Options{Logger: discard}).Text(imagepkg.NewCanvas(400, 400, color.White), "count", "3", TextOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if b.X != 40 || b.Y != 40 {
		t.Errorf("origin = (%v, %v), want (40, 40)", b.X, b.Y)
	}
}

// wrapWithIcon draws a two-line effect whose second line carries a sword
// icon right after "the ".
func wrapWithIcon(t *testing.T, align string) (*Block, *imagepkg.Canvas, func(string) float64) {
	t.Helper()
	root := t.TempDir()
	writeIcon(t, root, "Icons/sword.png", 64)

	table := locale.FromMap(map[string]any{
		"text": map[string]any{"ally": "allied unit"},
		"icon": map[string]any{"sword": "Icons/sword.png"},
	})
	raw := "Give every {{text:ally}} in this row a bonus of two points until the {{icon:sword}} end."

	measure := measureWith(t, "goregular", iconTestSize)
	resolved := text.NewResolver(table).Resolve(raw).Text
	// wrap width of three quarters of the text gives two lines
	width := int(math.Ceil(0.75 * measure(resolved) / 0.9))

	cfg := testConfig(width, map[string]config.Field{
		"effect": {X: 0.5, Y: 0.5, Font: "goregular", Size: iconTestSize, Color: "black", Align: align, Wrap: true},
	})
	r := New(cfg, Options{Table: table, Assets: imagepkg.NewStore(root), Logger: discard})
	c := imagepkg.NewCanvas(width, 400, color.White)

	b, err := r.Text(c, "effect", raw, TextOptions{Resolve: true})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got := strings.Count(b.Text, "\n"); got != 1 {
		t.Fatalf("wrapped into %d lines, want 2: %q", got+1, b.Text)
	}
	if len(b.Icons) != 1 {
		t.Fatalf("placed %d icons, want 1", len(b.Icons))
	}
	if b.Icons[0].Line != 1 {
		t.Fatalf("icon line = %d, want 1", b.Icons[0].Line)
	}
	return b, c, measure
}

const iconTestSize = 40

// iconPrefix is the second-line text before the icon's blank run.
func iconPrefix(b *Block) string {
	_, prefix := text.Locate(b.Text, strings.LastIndex(b.Text, "the ")+len("the "))
	return prefix
}

// An effect that wraps onto two lines with an icon on the second line puts
// the icon exactly one line height below the text origin.
func TestTextIconOnSecondLine(t *testing.T) {
	b, c, measure := wrapWithIcon(t, "left")

	ic := b.Icons[0]
	if d := float64(ic.Origin.Y) - b.Y; math.Abs(d-b.LineHeight) > 0.5 {
		t.Errorf("icon offset = %.1f, want one line height %.1f", d, b.LineHeight)
	}

	wantX := b.X + measure(iconPrefix(b))
	if math.Abs(float64(ic.Origin.X)-wantX) > 0.5 {
		t.Errorf("icon x = %d, want %.1f", ic.Origin.X, wantX)
	}

	iconSize := int(math.Round(config.Default().Text.IconScale * iconTestSize))
	if ic.Rect.Dx() != iconSize || ic.Rect.Dy() != iconSize {
		t.Errorf("icon size = %v, want %d", ic.Rect.Size(), iconSize)
	}
	if want := ic.Origin.Y - int(math.Round((float64(iconSize)-b.LineHeight)/2)); ic.Rect.Min.Y != want {
		t.Errorf("icon top = %d, want %d", ic.Rect.Min.Y, want)
	}

	px := c.Image().At(ic.Rect.Min.X+iconSize/2, ic.Rect.Min.Y+iconSize/2)
	if r, g, _, _ := px.RGBA(); r>>8 < 200 || g>>8 > 50 {
		t.Errorf("icon pixel = %v, want red", px)
	}
}

// Centered lines shift their icons with them.
func TestTextIconFollowsCenteredLine(t *testing.T) {
	b, _, measure := wrapWithIcon(t, "center")

	line := strings.Split(b.Text, "\n")[1]
	lineX := b.X + (b.Width-measure(line))/2
	wantX := lineX + measure(iconPrefix(b))
	if got := float64(b.Icons[0].Origin.X); math.Abs(got-wantX) > 0.5 {
		t.Errorf("icon x = %.0f, want %.1f", got, wantX)
	}
	if lineX-b.X < 1 {
		t.Errorf("second line starts at the block edge (%.1f), want it centered", lineX-b.X)
	}
}

// reddish counts pixels that look like the test icon.
func reddish(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 200 && c.G < 50 && c.B < 50 {
				n++
			}
		}
	}
	return n
}

func TestTextMissingIconIsSkipped(t *testing.T) {
	table := locale.FromMap(map[string]any{
		"icon": map[string]any{"bow": "Icons/bow.png"},
	})
	cfg := testConfig(600, map[string]config.Field{
		"effect": {X: 0.5, Y: 0.5, Font: "goregular", Size: 30, Wrap: true},
	})
	r := New(cfg, Options{Table: table, Assets: imagepkg.NewStore(t.TempDir()), Logger: discard})
	c := imagepkg.NewCanvas(600, 400, color.White)

	b, err := r.Text(c, "effect", "Shoot {{icon:bow}} twice", TextOptions{Resolve: true})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if len(b.Icons) != 0 {
		t.Errorf("Icons = %v, want none", b.Icons)
	}
	// five placeholder blanks between the two original spaces
	if want := "Shoot" + strings.Repeat(" ", 7) + "twice"; !strings.Contains(b.Text, want) {
		t.Errorf("Text = %q, want the blank run kept", b.Text)
	}
	if inked(c.Image(), color.White) == 0 {
		t.Error("surrounding text not drawn")
	}
	if n := reddish(c.Image()); n != 0 {
		t.Errorf("%d icon pixels drawn for a missing icon", n)
	}
}

func TestTextUnresolvedReported(t *testing.T) {
	cfg := testConfig(600, map[string]config.Field{
		"effect": {X: 0.5, Y: 0.5, Font: "goregular", Size: 20},
	})
	r := New(cfg, Options{Table: locale.FromMap(nil), Logger: discard})
	b, err := r.Text(imagepkg.NewCanvas(600, 400, color.White), "effect", "{{text:missing}} here", TextOptions{Resolve: true})
	if err != nil {
		t.Fatal(err)
	}
	if b.Text != "{{text:missing}} here" || len(b.Unresolved) != 1 {
		t.Errorf("block = %q, unresolved %v", b.Text, b.Unresolved)
	}
}

func TestTextUnderline(t *testing.T) {
	fields := map[string]config.Field{
		"effect": {X: 0.5, Y: 0.5, Font: "goregular", Size: 30, Color: "#202020"},
	}
	r := New(testConfig(600, fields), Options{Logger: discard})

	plain := imagepkg.NewCanvas(600, 400, color.White)
	if _, err := r.Text(plain, "effect", "Block the next attack", TextOptions{}); err != nil {
		t.Fatal(err)
	}
	marked := imagepkg.NewCanvas(600, 400, color.White)
	if _, err := r.Text(marked, "effect", "Block the next attack", TextOptions{Underline: []string{"next", "absent"}}); err != nil {
		t.Fatal(err)
	}

	if inked(marked.Image(), color.White) <= inked(plain.Image(), color.White) {
		t.Error("underline added no pixels")
	}
}

func TestTextBadColor(t *testing.T) {
	cfg := testConfig(100, map[string]config.Field{
		"title": {X: 0.5, Y: 0.5, Font: "goregular", Size: 10, Color: "not-a-color"},
	})
	if _, err := New(cfg, Options{Logger: discard}).Text(imagepkg.NewCanvas(100, 100, nil), "title", "x", TextOptions{}); err == nil {
		t.Error("expected color error")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{"", color.RGBA{A: 255}, false},
		{"black", color.RGBA{A: 255}, false},
		{"DarkRed", color.RGBA{R: 0x8b, A: 255}, false},
		{"#3a2f1b", color.RGBA{R: 0x3a, G: 0x2f, B: 0x1b, A: 255}, false},
		{"#zzz", color.RGBA{}, true},
		{"sparkly", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("ParseColor(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if c := color.RGBAModel.Convert(got).(color.RGBA); c != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, c, tt.want)
		}
	}
}

func TestFontCache(t *testing.T) {
	fc := NewFontCache(t.TempDir())

	face, err := fc.Face("goregular", 24)
	if err != nil {
		t.Fatalf("Face(goregular): %v", err)
	}
	if h := face.Metrics().Height.Ceil(); h < 24 {
		t.Errorf("line height = %d, want at least the font size", h)
	}
	if _, err := fc.Face("goregular", 48); err != nil {
		t.Errorf("second size: %v", err)
	}
	if len(fc.fonts) != 1 {
		t.Errorf("parsed %d fonts, want 1 shared", len(fc.fonts))
	}

	if _, err := fc.Face("font/Missing.ttf", 12); err == nil {
		t.Error("Face(missing file) succeeded")
	}
}
