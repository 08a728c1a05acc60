package api

import (
	"log/slog"

	"github.com/youruser/cardforge/internal/card"
	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/catalog"
	"github.com/youruser/cardforge/internal/config"
	imagepkg "github.com/youruser/cardforge/internal/image"
	"github.com/youruser/cardforge/internal/render"
)

// Server holds what the handlers share. Catalog may be nil.
type Server struct {
	Config  *config.Config
	Sources cards.Sources
	Assets  *imagepkg.Store
	Fonts   *render.FontCache
	Catalog *catalog.Catalog
	Logger  *slog.Logger
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// builder returns a card builder for lang with the merged keyword table.
func (s *Server) builder(lang string) (*card.Builder, error) {
	table, err := s.Sources.Keywords(lang)
	if err != nil {
		return nil, err
	}
	return card.New(s.Config, card.Options{
		Lang:   lang,
		Table:  table,
		Assets: s.Assets,
		Fonts:  s.Fonts,
		Logger: s.logger(),
	}), nil
}
