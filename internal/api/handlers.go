package api

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/deck"
	imagepkg "github.com/youruser/cardforge/internal/image"
)

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) langsHandler(c *gin.Context) {
	langs, err := s.Sources.Languages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"langs": langs})
}

// loadCards loads the cards of the lang query parameter, writing the error
// response itself when it fails.
func (s *Server) loadCards(c *gin.Context) ([]cards.Card, bool) {
	lang := c.Query("lang")
	if lang == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lang is required"})
		return nil, false
	}
	all, err := s.Sources.Cards(lang)
	if errors.Is(err, fs.ErrNotExist) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown language " + lang})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return all, true
}

// cardsHandler lists cards of a language, optionally by faction and free words.
func (s *Server) cardsHandler(c *gin.Context) {
	all, ok := s.loadCards(c)
	if !ok {
		return
	}
	var opt cards.FilterOptions
	if f := c.Query("faction"); f != "" {
		opt.Factions = strings.Split(f, ",")
	}
	opt.FreeWords = c.Query("q")

	out := cards.Filter(all, opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

func (s *Server) filterHandler(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	all, ok := s.loadCards(c)
	if !ok {
		return
	}
	out := cards.Filter(all, opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

// cardImageHandler renders the posted card record and returns the PNG.
func (s *Server) cardImageHandler(c *gin.Context) {
	var rec cards.Card
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rec.Name == "" || rec.Faction == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and Faction are required"})
		return
	}

	b, err := s.builder(c.Query("lang"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	res, err := b.Build(rec)
	if err != nil {
		s.logger().Error("card render failed", "name", rec.Name, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, tok := range res.Unresolved {
		c.Writer.Header().Add("X-Unresolved-Token", tok.Raw())
	}

	buf := new(bytes.Buffer)
	if err := imagepkg.EncodePNG(buf, res.Canvas.Image(), s.Config.Canvas.DPI); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// deckHandler returns the print manifest of a language, one section per faction.
func (s *Server) deckHandler(c *gin.Context) {
	all, ok := s.loadCards(c)
	if !ok {
		return
	}
	if f := c.Query("faction"); f != "" {
		all = cards.Filter(all, cards.FilterOptions{Factions: []string{f}})
	}
	var sections []string
	for _, d := range deck.ByFaction(c.Query("lang"), all) {
		sections = append(sections, deck.ExportDeckText(d))
	}
	c.String(http.StatusOK, strings.Join(sections, "\n"))
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 256
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 2048 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) catalogHandler(c *gin.Context) {
	if s.Catalog == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no catalog configured"})
		return
	}
	entries, err := s.Catalog.List(c.Request.Context(), c.Query("lang"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "entries": entries})
}
