package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gigmarket/internal/server/http/handlers"
	"github.com/polkiloo/gigmarket/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	projectHandler := handlers.NewProjectHandler(facade)
	bidHandler := handlers.NewBidHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	dashboardHandler := handlers.NewDashboardHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:id", projectHandler.Get)
	// Authenticated by provider signature, not by token.
	api.POST("/payments/webhook", paymentHandler.Webhook)

	private := api.Group("")
	private.Use(middleware.AuthRequired(facade))
	private.POST("/projects", projectHandler.Create)
	private.PATCH("/projects/:id", projectHandler.Edit)
	private.POST("/projects/:id/publish", projectHandler.Publish)
	private.POST("/projects/:id/bids", bidHandler.Submit)
	private.PATCH("/bids/:id", bidHandler.Resolve)
	private.POST("/payments", paymentHandler.Initiate)
	private.GET("/payments/:id", paymentHandler.Get)
	private.GET("/dashboard/stats", dashboardHandler.Stats)

	return engine
}
