package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "slidetutor/docs"
	"slidetutor/internal/config"
	"slidetutor/internal/handler"
	"slidetutor/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	deckH *handler.DeckHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Deck routes
	decks := v1.Group("/decks")
	decks.POST("", deckH.Upload)
	decks.GET("/:id", deckH.GetInfo)
	decks.GET("/:id/pages/:page", deckH.GetExplanation)
	decks.GET("/:id/export", deckH.Export)

	return r
}
