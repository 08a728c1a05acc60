// Package card assembles full card images: art layers in paint order, then
// the text fields, then an optional QR stamp.
package card

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/config"
	imagepkg "github.com/youruser/cardforge/internal/image"
	"github.com/youruser/cardforge/internal/render"
	"github.com/youruser/cardforge/internal/text"
)

type Options struct {
	// Lang is stamped into output paths and QR content.
	Lang   string
	Table  text.Table
	Assets *imagepkg.Store
	Fonts  *render.FontCache
	Logger *slog.Logger
}

// Builder turns card records into canvases. It is safe for concurrent use.
type Builder struct {
	cfg    *config.Config
	lang   string
	assets *imagepkg.Store
	text   *render.Renderer
	log    *slog.Logger
}

func New(cfg *config.Config, opts Options) *Builder {
	if opts.Assets == nil {
		opts.Assets = imagepkg.NewStore(cfg.Assets.Root)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Builder{
		cfg:    cfg,
		lang:   opts.Lang,
		assets: opts.Assets,
		text: render.New(cfg, render.Options{
			Table:  opts.Table,
			Fonts:  opts.Fonts,
			Assets: opts.Assets,
			Logger: opts.Logger,
		}),
		log: opts.Logger.With("lang", opts.Lang),
	}
}

// layerStep is one image layer of the pipeline. refs returns the asset
// references to paint, in order.
type layerStep struct {
	layer string
	refs  func(b *Builder, c cards.Card) []string
}

var layerSteps = []layerStep{
	{config.LayerCharacter, (*Builder).characterRef},
	{config.LayerCore, func(b *Builder, c cards.Card) []string {
		return []string{b.assetRef(b.cfg.Assets.Model, c, "")}
	}},
	{config.LayerFaction, func(b *Builder, c cards.Card) []string {
		return []string{b.assetRef(b.cfg.Assets.Faction, c, "")}
	}},
	{config.LayerPosition, func(b *Builder, c cards.Card) []string {
		var refs []string
		for _, p := range c.Positions() {
			refs = append(refs, b.assetRef(b.cfg.Assets.Position, c, p))
		}
		return refs
	}},
}

// fieldStep is one text field of the pipeline.
type fieldStep struct {
	field string
	value func(c cards.Card) string
	opts  render.TextOptions
}

var fieldSteps = []fieldStep{
	{config.FieldTitle, func(c cards.Card) string { return c.Name }, render.TextOptions{}},
	{config.FieldCount, func(c cards.Card) string { return c.Count.String() }, render.TextOptions{}},
	{config.FieldScore, func(c cards.Card) string { return c.Score.String() }, render.TextOptions{}},
	{config.FieldEffectType, func(c cards.Card) string { return c.Type }, render.TextOptions{Resolve: true}},
	{config.FieldEffect, func(c cards.Card) string { return c.Effect }, render.TextOptions{Resolve: true, Wrap: true}},
	{config.FieldLegend, func(c cards.Card) string { return c.Legend }, render.TextOptions{}},
}

// Result is a built card.
type Result struct {
	Card   cards.Card
	Canvas *imagepkg.Canvas
	// Unresolved lists placeholders that were left verbatim.
	Unresolved []text.Token
}

// Build paints c. Missing character art falls back to the default asset;
// any other missing layer asset is an error.
func (b *Builder) Build(c cards.Card) (*Result, error) {
	b.log.Debug("building card", "name", c.Name, "faction", c.Faction)

	bg, err := render.ParseColor(b.cfg.Canvas.Background)
	if err != nil {
		return nil, fmt.Errorf("canvas background: %w", err)
	}
	canvas := imagepkg.NewCanvas(b.cfg.Canvas.Width, b.cfg.Canvas.Height, bg)
	if b.cfg.Canvas.Frame {
		canvas.DrawFrame(imagepkg.DefaultFrameStyle)
	}

	for _, step := range layerSteps {
		l, err := b.layer(step.layer)
		if err != nil {
			return nil, err
		}
		for _, ref := range step.refs(b, c) {
			img, err := b.assets.Load(ref)
			if err != nil {
				return nil, fmt.Errorf("card %q layer %s: %w", c.Name, step.layer, err)
			}
			canvas.DrawLayer(img, l)
		}
	}

	res := &Result{Card: c, Canvas: canvas}
	for _, step := range fieldSteps {
		s := step.value(c)
		if s == "" {
			continue
		}
		block, err := b.text.Text(canvas, step.field, s, step.opts)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", c.Name, err)
		}
		res.Unresolved = append(res.Unresolved, block.Unresolved...)
	}

	if b.cfg.QR.Enabled {
		if err := b.stampQR(canvas, c); err != nil {
			return nil, fmt.Errorf("card %q: %w", c.Name, err)
		}
	}
	return res, nil
}

// Check resolves the card's text fields without drawing and returns the
// placeholders left verbatim.
func (b *Builder) Check(c cards.Card) []text.Token {
	var out []text.Token
	for _, step := range fieldSteps {
		if !step.opts.Resolve {
			continue
		}
		out = append(out, b.text.Resolve(step.value(c)).Unresolved...)
	}
	return out
}

// Save writes a built card under outDir as <lang>/<faction>/<name>.png.
func (b *Builder) Save(outDir string, r *Result) (string, error) {
	path := OutputPath(outDir, b.lang, r.Card)
	if err := imagepkg.SavePNG(path, r.Canvas.Image(), b.cfg.Canvas.DPI); err != nil {
		return "", err
	}
	b.log.Info("card saved", "name", r.Card.Name, "path", path)
	return path, nil
}

// OutputPath is where a card of lang is written under outDir.
func OutputPath(outDir, lang string, c cards.Card) string {
	return filepath.Join(FactionDir(outDir, lang, c.Faction), safeName(c.Name)+".png")
}

// FactionDir holds the cards and print manifest of one faction.
func FactionDir(outDir, lang, faction string) string {
	return filepath.Join(outDir, lang, safeName(faction))
}

func safeName(s string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(strings.TrimSpace(s))
}

func (b *Builder) layer(name string) (imagepkg.Layer, error) {
	l, err := b.cfg.Layer(name)
	if err != nil {
		return imagepkg.Layer{}, err
	}
	fit, err := imagepkg.ParseFit(l.Fit)
	if err != nil {
		return imagepkg.Layer{}, fmt.Errorf("layer %s: %w", name, err)
	}
	x, y := l.Point(b.cfg.Canvas.Width, b.cfg.Canvas.Height)
	return imagepkg.Layer{X: x, Y: y, Fit: fit, Width: l.Width, Height: l.Height, Centered: l.Centered}, nil
}

// characterRef picks the art variant for the card's row, or the default art
// when the faction has none.
func (b *Builder) characterRef(c cards.Card) []string {
	ref := b.assetRef(b.cfg.Assets.Character, c, "")
	if b.assets.Exists(ref) {
		return []string{ref}
	}
	b.log.Debug("character art missing, using default", "name", c.Name, "asset", ref)
	return []string{b.cfg.Assets.Default}
}

func (b *Builder) assetRef(pattern string, c cards.Card, position string) string {
	variants := b.cfg.Assets.Variants
	if variants <= 0 {
		variants = 1
	}
	return strings.NewReplacer(
		"{faction}", c.Faction,
		"{index}", strconv.Itoa(c.Index%variants+1),
		"{position}", position,
	).Replace(pattern)
}

func (b *Builder) stampQR(canvas *imagepkg.Canvas, c cards.Card) error {
	content := strings.NewReplacer(
		"{lang}", b.lang,
		"{faction}", c.Faction,
		"{name}", c.Name,
	).Replace(b.cfg.QR.Content)
	if content == "" {
		return errors.New("qr: empty content")
	}
	img, err := imagepkg.GenerateQRImage(content, b.cfg.QR.Size)
	if err != nil {
		return fmt.Errorf("qr: %w", err)
	}
	l, err := b.layer(config.LayerQR)
	if err != nil {
		return err
	}
	canvas.DrawLayer(img, l)
	return nil
}
