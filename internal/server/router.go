package server

import (
	"github.com/gin-gonic/gin"

	"github.com/shopdesk/backoffice/internal/http/handlers"
	"github.com/shopdesk/backoffice/internal/http/middleware"
	"github.com/shopdesk/backoffice/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	HealthHandler  *handlers.HealthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	UploadsDir     string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS())

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	// Uploaded pictures, served read-only by generated filename.
	router.Static("/uploads", cfg.UploadsDir)

	products := router.Group("/products")
	{
		products.GET("", cfg.ProductHandler.List)
		products.GET("/count", cfg.ProductHandler.Count)
		products.GET("/:id", cfg.ProductHandler.GetByID)
		products.POST("", cfg.ProductHandler.Create)
		products.POST("/:id/edit", cfg.ProductHandler.Edit)
		products.POST("/:id/delete", cfg.ProductHandler.Delete)
		products.POST("/:id/picture", cfg.ProductHandler.UploadPicture)
		products.POST("/:id/picture/delete", cfg.ProductHandler.DeletePicture)
	}

	orders := router.Group("/orders")
	{
		orders.GET("", cfg.OrderHandler.List)
		orders.GET("/count", cfg.OrderHandler.Count)
		orders.GET("/:id", cfg.OrderHandler.GetByID)
		orders.POST("", cfg.OrderHandler.Create)
		orders.POST("/:id/edit", cfg.OrderHandler.Edit)
		orders.POST("/:id/delete", cfg.OrderHandler.Delete)
	}

	return router
}
