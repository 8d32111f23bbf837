package repositories

import (
	"context"

	"github.com/saigon-food-map/backend/internal/domain/entities"
)

// RestaurantRepository defines the query surface over the loaded collection
type RestaurantRepository interface {
	// Search filters, sorts and paginates the current collection
	Search(ctx context.Context, params entities.SearchParams) (*entities.SearchResult, error)

	// GetByID retrieves one restaurant by its deterministic ID
	GetByID(ctx context.Context, id string) (*entities.Restaurant, error)

	// GetRandom picks one restaurant uniformly at random
	GetRandom(ctx context.Context) (*entities.Restaurant, error)

	// GetSimilar returns up to limit restaurants sharing the anchor's
	// category or district, anchor excluded
	GetSimilar(ctx context.Context, id string, limit int) ([]*entities.Restaurant, error)

	// FilterOptions returns the facet values present in the collection
	FilterOptions(ctx context.Context) (*entities.FilterOptions, error)

	// Current returns whatever collection is currently published
	Current() []*entities.Restaurant

	// Replace atomically publishes a freshly ingested collection
	Replace(collection []*entities.Restaurant)
}
