package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gopos/internal/metrics"
	"github.com/polkiloo/gopos/internal/server/http/handlers"
	"github.com/polkiloo/gopos/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PosFacade, logger *slog.Logger, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	customerHandler := handlers.NewCustomerHandler(facade)
	locationHandler := handlers.NewLocationHandler(facade)
	reportHandler := handlers.NewReportHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/metrics", gin.WrapH(m.Handler()))
	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	secured := api.Group("")
	secured.Use(middleware.AuthRequired(facade))

	pos := secured.Group("/pos")
	pos.GET("/variants/:sku", catalogHandler.Resolve)
	pos.GET("/cart", cartHandler.Get)
	pos.DELETE("/cart", cartHandler.Clear)
	pos.POST("/cart/items", cartHandler.AddItem)
	pos.PATCH("/cart/items/:sku", cartHandler.UpdateItem)
	pos.DELETE("/cart/items/:sku", cartHandler.RemoveItem)
	pos.POST("/cart/checkout", cartHandler.Checkout)
	pos.POST("/checkout", checkoutHandler.Settle)

	secured.POST("/inventory/skus", catalogHandler.GenerateSKU)

	orders := secured.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)

	customers := secured.Group("/customers")
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)

	secured.GET("/locations", locationHandler.List)

	reports := secured.Group("/reports")
	reports.GET("/sales", reportHandler.Sales)
	reports.GET("/top-products", reportHandler.TopProducts)

	return engine
}
