package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saigon-food-map/backend/internal/domain/entities"
)

// CollectionReloader re-ingests the raw datasets and republishes the collection
type CollectionReloader interface {
	Reload(ctx context.Context) ([]*entities.Restaurant, error)
}

// AdminHandler handles operational endpoints
type AdminHandler struct {
	reloader CollectionReloader
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reloader CollectionReloader) *AdminHandler {
	return &AdminHandler{reloader: reloader}
}

// Reload handles POST /api/admin/reload. The whole collection is rebuilt
// from the source files; queries keep serving the old snapshot until the
// new one is published.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	collection, err := h.reloader.Reload(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	log.Info().Int("count", len(collection)).Msg("data reloaded via admin endpoint")
	respondWithData(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Reloaded %d restaurants", len(collection)),
	}, nil)
}

// Health handles GET /health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
