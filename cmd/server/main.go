package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"inventra/docs"
	"inventra/internal/cache"
	"inventra/internal/config"
	"inventra/internal/db"
	"inventra/internal/handler"
	"inventra/internal/logger"
	"inventra/internal/repository"
	"inventra/internal/router"
	"inventra/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Inventra API
// @version 1.0
// @description Inventory management API over MongoDB: locations, products, categories, suppliers, inventory transactions, and users.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()
	logger.Init("inventra", cfg.LogLevel)
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	ctx := context.Background()
	store, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("store init")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	locationRepo := repository.NewLocationRepository(store.Database)
	categoryRepo := repository.NewCategoryRepository(store.Database)
	productRepo := repository.NewProductRepository(store.Database, categoryRepo)
	supplierRepo := repository.NewSupplierRepository(store.Database)
	transactionRepo := repository.NewTransactionRepository(store.Database)
	userRepo := repository.NewUserRepository(store.Database)

	// Initialize services
	locationService := service.NewLocationService(locationRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, cacheClient)
	supplierService := service.NewSupplierService(supplierRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	locationHandler := handler.NewLocationHandler(locationService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	userHandler := handler.NewUserHandler(userService)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		store,
		locationHandler,
		categoryHandler,
		productHandler,
		supplierHandler,
		transactionHandler,
		userHandler,
	)

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("store shutdown")
	}
}
