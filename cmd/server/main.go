package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardforge/internal/api"
	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/catalog"
	"github.com/youruser/cardforge/internal/config"
	imagepkg "github.com/youruser/cardforge/internal/image"
	"github.com/youruser/cardforge/internal/render"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CARDFORGE_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if root := os.Getenv("CARDFORGE_SPRITES"); root != "" {
		cfg.Assets.Root = root
	}

	s := &api.Server{
		Config:  cfg,
		Sources: cards.Sources{Root: getenv("CARDFORGE_SOURCES", "sources")},
		Assets:  imagepkg.NewStore(cfg.Assets.Root),
		Fonts:   render.NewFontCache(getenv("CARDFORGE_FONTS", ".")),
		Logger:  slog.Default(),
	}

	// List translations at startup (best-effort)
	if langs, err := s.Sources.Languages(); err != nil {
		slog.Warn("no translations found at startup", "sources", s.Sources.Root, "err", err)
	} else {
		slog.Info("translations", "langs", langs)
	}

	if path := os.Getenv("CARDFORGE_CATALOG"); path != "" {
		cat, err := catalog.Open(path)
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		defer cat.Close()
		s.Catalog = cat
	}

	r := gin.Default()
	api.RegisterRoutes(r, s)

	port := getenv("PORT", "8080")
	slog.Info("starting server on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
