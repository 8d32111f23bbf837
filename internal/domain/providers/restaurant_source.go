package providers

import (
	"context"

	"github.com/saigon-food-map/backend/internal/domain/entities"
)

// RestaurantSource defines the interface for ingesting raw datasets into
// canonical restaurant records
type RestaurantSource interface {
	// LoadAll parses every available source file under dataDir and returns
	// the merged collection. A missing file is skipped, not an error.
	LoadAll(ctx context.Context, dataDir string) ([]*entities.Restaurant, error)
}
