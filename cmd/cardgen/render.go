package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/youruser/cardforge/internal/card"
	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/catalog"
	"github.com/youruser/cardforge/internal/config"
	"github.com/youruser/cardforge/internal/deck"
	imagepkg "github.com/youruser/cardforge/internal/image"
	"github.com/youruser/cardforge/internal/render"
)

var (
	langs       []string
	configPath  string
	spritesPath string
	fontsPath   string
	outPath     string
	catalogPath string
	workers     int
	checkOnly   bool
	sheet       bool
)

// renderCmd renders every card of the selected translations
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render card images",
	Long: `Render every card of the selected translations to
<out>/<lang>/<faction>/<name>.png with a print manifest per faction.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if spritesPath != "" {
			cfg.Assets.Root = spritesPath
		}

		src := cards.Sources{Root: sourcesPath}
		if len(langs) == 0 {
			if langs, err = src.Languages(); err != nil {
				return err
			}
		}
		slog.Info("available translations", "langs", langs)

		var cat *catalog.Catalog
		if catalogPath != "" && !checkOnly {
			if cat, err = catalog.Open(catalogPath); err != nil {
				return err
			}
			defer cat.Close()
		}

		r := &runner{
			cfg:    cfg,
			src:    src,
			assets: imagepkg.NewStore(cfg.Assets.Root),
			fonts:  render.NewFontCache(fontsPath),
			cat:    cat,
		}
		for _, lang := range langs {
			if err := r.run(cmd.Context(), lang); err != nil {
				return fmt.Errorf("%s: %w", lang, err)
			}
		}
		return nil
	},
}

type runner struct {
	cfg    *config.Config
	src    cards.Sources
	assets *imagepkg.Store
	fonts  *render.FontCache
	cat    *catalog.Catalog
}

func (r *runner) run(ctx context.Context, lang string) error {
	log := slog.With("lang", lang)

	table, err := r.src.Keywords(lang)
	if err != nil {
		return err
	}
	cs, err := r.src.Cards(lang)
	if err != nil {
		return err
	}
	b := card.New(r.cfg, card.Options{
		Lang:   lang,
		Table:  table,
		Assets: r.assets,
		Fonts:  r.fonts,
		Logger: slog.Default(),
	})

	if checkOnly {
		missing := 0
		for _, c := range cs {
			for _, tok := range b.Check(c) {
				log.Warn("unresolved placeholder", "card", c.Name, "token", tok.Raw())
				missing++
			}
		}
		if missing > 0 {
			return fmt.Errorf("%d unresolved placeholders", missing)
		}
		log.Info("all placeholders resolve", "cards", len(cs))
		return nil
	}

	saved, err := b.RenderAll(ctx, cs, outPath, workers)
	if err != nil {
		return err
	}
	for _, d := range deck.ByFaction(lang, cs) {
		path, err := deck.WriteManifest(card.FactionDir(outPath, lang, d.Faction), d)
		if err != nil {
			return err
		}
		log.Info("manifest written", "faction", d.Faction, "cards", d.Total(), "path", path)
	}

	if sheet {
		if err := r.writeSheets(lang, saved); err != nil {
			return err
		}
	}

	if r.cat != nil {
		for _, s := range saved {
			err := r.cat.Record(ctx, catalog.Entry{
				Lang:       lang,
				Faction:    s.Card.Faction,
				Name:       s.Card.Name,
				Path:       s.Path,
				Copies:     max(s.Card.Count.Int(), 1),
				Unresolved: s.Unresolved,
			})
			if err != nil {
				return err
			}
		}
	}
	log.Info("translation rendered", "cards", len(saved))
	return nil
}

// writeSheets lays every faction's cards out on a print sheet, one cell per copy.
func (r *runner) writeSheets(lang string, saved []card.Saved) error {
	rendered := imagepkg.NewStore("")
	byFaction := map[string][]image.Image{}
	var factions []string
	for _, s := range saved {
		img, err := rendered.Load(s.Path)
		if err != nil {
			return err
		}
		if _, ok := byFaction[s.Card.Faction]; !ok {
			factions = append(factions, s.Card.Faction)
		}
		for i := 0; i < max(s.Card.Count.Int(), 1); i++ {
			byFaction[s.Card.Faction] = append(byFaction[s.Card.Faction], img)
		}
	}

	layout := imagepkg.DefaultSheet(r.cfg.Canvas.Width, r.cfg.Canvas.Height)
	for _, f := range factions {
		path := filepath.Join(card.FactionDir(outPath, lang, f), "sheet.png")
		if err := imagepkg.SavePNG(path, layout.Compose(byFaction[f]), r.cfg.Canvas.DPI); err != nil {
			return err
		}
		slog.Info("print sheet written", "lang", lang, "faction", f, "cards", len(byFaction[f]), "path", path)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringSliceVarP(&langs, "lang", "l", nil, "Translations to render (default all)")
	renderCmd.Flags().StringVarP(&configPath, "config", "c", "", "Properties YAML merged over the defaults")
	renderCmd.Flags().StringVar(&spritesPath, "sprites", "", "Sprite directory (overrides the config)")
	renderCmd.Flags().StringVar(&fontsPath, "fonts", ".", "Directory font paths are relative to")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "output", "Output directory")
	renderCmd.Flags().StringVar(&catalogPath, "catalog", "", "SQLite catalog to record renders in")
	renderCmd.Flags().IntVarP(&workers, "workers", "w", 1, "Cards rendered in parallel")
	renderCmd.Flags().BoolVar(&checkOnly, "check", false, "Only report unresolved placeholders")
	renderCmd.Flags().BoolVar(&sheet, "sheet", false, "Also write a print sheet per faction")
}
