package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/saigon-food-map/backend/internal/domain/entities"
	"github.com/saigon-food-map/backend/internal/domain/providers"
	"github.com/saigon-food-map/backend/internal/domain/repositories"
)

// RestaurantService owns the ingestion/query lifecycle: it populates the
// repository from the raw datasets and delegates queries to it. One instance
// is constructed per process and handed to the request handlers.
type RestaurantService struct {
	source  providers.RestaurantSource
	repo    repositories.RestaurantRepository
	dataDir string
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(source providers.RestaurantSource, repo repositories.RestaurantRepository, dataDir string) *RestaurantService {
	return &RestaurantService{
		source:  source,
		repo:    repo,
		dataDir: dataDir,
	}
}

// LoadAll runs the initial ingestion and publishes the collection. Safe to
// call again; it simply re-executes the full ingestion.
func (s *RestaurantService) LoadAll(ctx context.Context) ([]*entities.Restaurant, error) {
	return s.Reload(ctx)
}

// Reload re-ingests every source file and replaces the published collection
// wholesale. There is no partial or incremental reload; callers should treat
// this as a potentially slow operation on large files.
func (s *RestaurantService) Reload(ctx context.Context) ([]*entities.Restaurant, error) {
	collection, err := s.source.LoadAll(ctx, s.dataDir)
	if err != nil {
		return nil, err
	}

	s.repo.Replace(collection)
	log.Info().Int("count", len(collection)).Msg("collection reloaded")
	return collection, nil
}

// Current returns whatever collection is currently published, empty before
// the first load.
func (s *RestaurantService) Current() []*entities.Restaurant {
	return s.repo.Current()
}

// Search filters, sorts and paginates the collection
func (s *RestaurantService) Search(ctx context.Context, params entities.SearchParams) (*entities.SearchResult, error) {
	return s.repo.Search(ctx, params)
}

// GetByID retrieves a restaurant by ID
func (s *RestaurantService) GetByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	return s.repo.GetByID(ctx, id)
}

// GetRandom picks one restaurant uniformly at random
func (s *RestaurantService) GetRandom(ctx context.Context) (*entities.Restaurant, error) {
	return s.repo.GetRandom(ctx)
}

// GetSimilar returns restaurants sharing the anchor's category or district
func (s *RestaurantService) GetSimilar(ctx context.Context, id string, limit int) ([]*entities.Restaurant, error) {
	return s.repo.GetSimilar(ctx, id, limit)
}

// FilterOptions returns the facet values currently present in the collection
func (s *RestaurantService) FilterOptions(ctx context.Context) (*entities.FilterOptions, error) {
	return s.repo.FilterOptions(ctx)
}
