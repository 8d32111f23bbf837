package routes

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/saigon-food-map/backend/internal/api/handlers"
	"github.com/saigon-food-map/backend/internal/api/middleware"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	restaurantHandler *handlers.RestaurantHandler

	adminHandler *handlers.AdminHandler

	rateLimiter *middleware.RateLimiter

	allowedOrigins []string
}

// NewRouter creates a new router

func NewRouter(
	restaurantHandler *handlers.RestaurantHandler,
	adminHandler *handlers.AdminHandler,
	rateLimiter *middleware.RateLimiter,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		restaurantHandler: restaurantHandler,
		adminHandler:      adminHandler,

		rateLimiter:    rateLimiter,
		allowedOrigins: allowedOrigins,
	}
}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", r.adminHandler.Health)

	// Restaurant endpoints. Literal segments win over the {id} wildcard,
	// so "random" and "filters" never resolve as IDs.

	r.mux.HandleFunc("GET /api/restaurants", r.restaurantHandler.Search)

	r.mux.HandleFunc("GET /api/restaurants/random", r.restaurantHandler.GetRandom)

	r.mux.HandleFunc("GET /api/restaurants/filters", r.restaurantHandler.GetFilters)

	r.mux.HandleFunc("GET /api/restaurants/{id}", r.restaurantHandler.GetByID)

	r.mux.HandleFunc("GET /api/restaurants/{id}/similar", r.restaurantHandler.GetSimilar)

	// Admin endpoints

	r.mux.HandleFunc("POST /api/admin/reload", r.adminHandler.Reload)

	// Apply middleware chain
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: r.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	var handler http.Handler = r.mux
	handler = r.rateLimiter.Middleware(handler)
	handler = corsHandler.Handler(handler)
	handler = middleware.LoggingMiddleware(handler)

	return handler
}
