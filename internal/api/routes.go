package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/langs", s.langsHandler)
		api.GET("/cards", s.cardsHandler)
		api.POST("/filter", s.filterHandler)
		api.POST("/card/image", s.cardImageHandler)
		api.GET("/deck", s.deckHandler)
		api.GET("/qr", qrHandler)
		api.GET("/catalog", s.catalogHandler)
	}
}
