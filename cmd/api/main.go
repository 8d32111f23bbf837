package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/saigon-food-map/backend/internal/adapters/csvsource"
	"github.com/saigon-food-map/backend/internal/adapters/memory"
	"github.com/saigon-food-map/backend/internal/api/handlers"
	"github.com/saigon-food-map/backend/internal/api/middleware"
	"github.com/saigon-food-map/backend/internal/api/routes"
	"github.com/saigon-food-map/backend/internal/application/services"
	"github.com/saigon-food-map/backend/internal/infrastructure/observability"
	"github.com/saigon-food-map/backend/pkg/config"
)

func main() {

	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("saigon-food-map", cfg.Log.Environment, cfg.Log.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire the ingestion pipeline and the in-memory collection

	loader := csvsource.NewLoader()
	store := memory.NewRestaurantStore()
	restaurantService := services.NewRestaurantService(loader, store, cfg.Data.Dir)

	// Initial population. Missing files only shrink the collection; an
	// empty one still serves (zero-result) queries.
	collection, err := restaurantService.LoadAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("initial ingestion failed")
	}
	if len(collection) == 0 {
		log.Warn().Str("dir", cfg.Data.Dir).Msg("no source files found, starting with an empty collection")
	}

	// Initialize handlers

	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	adminHandler := handlers.NewAdminHandler(restaurantService)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.WindowSeconds, cfg.RateLimit.MaxRequests)

	// Set up router

	router := routes.NewRouter(
		restaurantHandler,
		adminHandler,
		rateLimiter,
		cfg.CORS.AllowedOrigins,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.ListenAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
