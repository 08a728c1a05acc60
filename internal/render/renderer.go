// Package render draws card text: placeholder resolution, word wrap,
// centered placement, inline icons and keyword underlines.
package render

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/youruser/cardforge/internal/config"
	imagepkg "github.com/youruser/cardforge/internal/image"
	"github.com/youruser/cardforge/internal/text"
)

// Options are the collaborators of a Renderer. Zero values get defaults.
type Options struct {
	Table  text.Table
	Fonts  *FontCache
	Assets *imagepkg.Store
	Logger *slog.Logger
}

// Renderer draws text fields described by a config onto canvases. It holds
// no per-card state and may be shared by goroutines rendering separate
// canvases.
type Renderer struct {
	cfg      *config.Config
	resolver *text.Resolver
	fonts    *FontCache
	assets   *imagepkg.Store
	log      *slog.Logger
}

func New(cfg *config.Config, opts Options) *Renderer {
	if opts.Fonts == nil {
		opts.Fonts = NewFontCache("")
	}
	if opts.Assets == nil {
		opts.Assets = imagepkg.NewStore("")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Renderer{
		cfg: cfg,
		resolver: &text.Resolver{
			Table:            opts.Table,
			PlaceholderWidth: cfg.Text.PlaceholderWidth,
		},
		fonts:  opts.Fonts,
		assets: opts.Assets,
		log:    opts.Logger,
	}
}

// Resolve substitutes placeholders in s with the renderer's keyword table.
func (r *Renderer) Resolve(s string) text.Run {
	return r.resolver.Resolve(s)
}

// TextOptions tune one Text call.
type TextOptions struct {
	// Resolve substitutes {{text:..}} and {{icon:..}} placeholders.
	Resolve bool
	// Wrap forces word wrap even if the field does not ask for it.
	Wrap bool
	// Underline lists extra literals to underline.
	Underline []string
}

// PlacedIcon is an inline icon drawn by Text.
type PlacedIcon struct {
	Asset string
	Line  int
	// Origin is the text position of the icon before the vertical nudge.
	Origin image.Point
	// Rect is where the icon was pasted.
	Rect image.Rectangle
}

// Block describes a drawn text field.
type Block struct {
	Text       string
	X, Y       float64
	Width      float64
	Height     float64
	LineHeight float64
	Icons      []PlacedIcon
	Unresolved []text.Token
}

// Text draws s into the named field. An unknown field is an error wrapping
// config.ErrUnknownField.
func (r *Renderer) Text(c *imagepkg.Canvas, field, s string, opts TextOptions) (*Block, error) {
	f, err := r.cfg.Field(field)
	if err != nil {
		return nil, err
	}
	face, err := r.fonts.Face(f.Font, f.Size)
	if err != nil {
		return nil, err
	}
	col, err := ParseColor(f.Color)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field, err)
	}

	dc := c.Context()
	dc.SetFontFace(face)
	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}

	run := text.Run{Text: s}
	if opts.Resolve {
		run = r.resolver.Resolve(s)
	}
	str, icons := run.Text, run.Icons
	if f.Wrap || opts.Wrap {
		wrapped := text.Layout(str, r.cfg.Text.WrapRatio*float64(c.Width()), measure)
		str = wrapped.Text
		icons = make([]text.IconPlacement, len(run.Icons))
		for i, ic := range run.Icons {
			icons[i] = text.IconPlacement{Asset: ic.Asset, Offset: wrapped.Offset(ic.Offset)}
		}
	}

	lines := strings.Split(str, "\n")
	widths := make([]float64, len(lines))
	b := &Block{
		Text:       str,
		LineHeight: dc.FontHeight(),
		Unresolved: run.Unresolved,
	}
	for i, line := range lines {
		widths[i] = measure(line)
		b.Width = math.Max(b.Width, widths[i])
	}
	b.Height = float64(len(lines)) * b.LineHeight

	b.X = f.X * float64(c.Width())
	b.Y = f.Y * float64(c.Height())
	if f.HCenter() {
		b.X -= math.Floor(b.Width / 2)
	}
	if f.VCenter() {
		b.Y -= math.Floor(b.Height / 2)
	}

	lineX := func(i int) float64 {
		switch f.Align {
		case "center":
			return b.X + (b.Width-widths[i])/2
		case "right":
			return b.X + b.Width - widths[i]
		}
		return b.X
	}

	ascent := float64(face.Metrics().Ascent) / 64
	dc.SetColor(col)
	for i, line := range lines {
		dc.DrawString(line, lineX(i), b.Y+ascent+float64(i)*b.LineHeight)
	}

	iconSize := int(math.Round(r.cfg.Text.IconScale * f.Size))
	for _, ic := range icons {
		line, prefix := text.Locate(str, ic.Offset)
		x := lineX(line) + measure(prefix)
		y := b.Y + float64(line)*b.LineHeight

		p, ok := r.drawIcon(c, ic.Asset, x, y, iconSize, b.LineHeight)
		if !ok {
			continue
		}
		p.Line = line
		b.Icons = append(b.Icons, p)
	}

	underline := append(append([]string(nil), f.Keywords...), opts.Underline...)
	if len(underline) > 0 {
		dc.SetColor(col)
		dc.SetLineWidth(r.cfg.Text.UnderlineWidth)
		for _, kw := range underline {
			r.underline(dc, face, str, kw, lineX, b)
		}
	}
	return b, nil
}

// drawIcon pastes an icon with its top-left at (x, y), nudged up so it sits
// centered on a line of height lineH. Load failures are logged and skipped.
func (r *Renderer) drawIcon(c *imagepkg.Canvas, asset string, x, y float64, size int, lineH float64) (PlacedIcon, bool) {
	img, err := r.assets.Load(asset)
	if err != nil {
		r.log.Warn("icon skipped", "asset", asset, "err", err)
		return PlacedIcon{}, false
	}
	img = imagepkg.Resize(img, imagepkg.FitThumbnail, size, size)

	origin := image.Pt(int(math.Round(x)), int(math.Round(y)))
	nudge := int(math.Round((float64(img.Bounds().Dy()) - lineH) / 2))
	rect := c.Paste(img, origin.X, origin.Y-nudge)
	return PlacedIcon{Asset: asset, Origin: origin, Rect: rect}, true
}

// underline draws a line under the first occurrence of kw, one glyph height
// below the top of its line.
func (r *Renderer) underline(dc *gg.Context, face font.Face, s, kw string, lineX func(int) float64, b *Block) {
	idx := strings.Index(s, kw)
	if kw == "" || idx < 0 {
		return
	}
	line, prefix := text.Locate(s, idx)
	bounds, _ := font.BoundString(face, kw)
	inkW := float64(bounds.Max.X-bounds.Min.X) / 64
	inkH := float64(bounds.Max.Y-bounds.Min.Y) / 64

	w, _ := dc.MeasureString(prefix)
	x := lineX(line) + w
	y := b.Y + float64(line)*b.LineHeight + inkH
	dc.DrawLine(x, y, x+inkW, y)
	dc.Stroke()
}
