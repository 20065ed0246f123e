package main

import (
	"fmt"
	"os"

	"github.com/shopdesk/backoffice/internal/assets"
	"github.com/shopdesk/backoffice/internal/db"
	"github.com/shopdesk/backoffice/internal/http/handlers"
	"github.com/shopdesk/backoffice/internal/platform/envutil"
	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/repos"
	"github.com/shopdesk/backoffice/internal/server"
	"github.com/shopdesk/backoffice/internal/services"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	addr := envutil.GetEnv("HTTP_ADDR", ":8080", log)
	uploadsDir := envutil.GetEnv("UPLOADS_DIR", "./uploads", log)

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	conn := postgresService.DB()

	log.Info("Setting up repos...")
	productRepo := repos.NewProductRepo(conn, log)
	orderRepo := repos.NewOrderRepo(conn, log)

	log.Info("Setting up services...")
	store, err := assets.NewLocalStore(uploadsDir, log)
	if err != nil {
		log.Fatal("Could not init asset store", "error", err)
	}
	productService := services.NewProductService(conn, log, productRepo)
	orderService := services.NewOrderService(conn, log, orderRepo, productRepo)

	log.Info("Setting up handlers...")
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		HealthHandler:  handlers.NewHealthHandler(),
		ProductHandler: handlers.NewProductHandler(productService, store, log),
		OrderHandler:   handlers.NewOrderHandler(orderService, log),
		UploadsDir:     store.Root(),
	})

	log.Info("Starting HTTP server", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}
