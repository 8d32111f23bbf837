package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saigon-food-map/backend/internal/domain/entities"
	apperrors "github.com/saigon-food-map/backend/pkg/errors"
)

// Validation bounds enforced at the transport edge; the core assumes
// pre-validated input.
const (
	maxQueryLength    = 200
	maxFacetLength    = 100
	maxSearchLimit    = 100
	maxSimilarLimit   = 20
	maxPriceFilterVND = 10_000_000
)

// RestaurantQuerier is the surface the handlers need from the application layer
type RestaurantQuerier interface {
	Search(ctx context.Context, params entities.SearchParams) (*entities.SearchResult, error)
	GetByID(ctx context.Context, id string) (*entities.Restaurant, error)
	GetRandom(ctx context.Context) (*entities.Restaurant, error)
	GetSimilar(ctx context.Context, id string, limit int) ([]*entities.Restaurant, error)
	FilterOptions(ctx context.Context) (*entities.FilterOptions, error)
}

// RestaurantHandler handles restaurant-related HTTP requests
type RestaurantHandler struct {
	service RestaurantQuerier
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(service RestaurantQuerier) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// Search handles GET /api/restaurants
func (h *RestaurantHandler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r.URL.Query())
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.service.Search(r.Context(), *params)
	if err != nil {
		handleError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, result.Restaurants, &responseMeta{
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// GetByID handles GET /api/restaurants/{id}
func (h *RestaurantHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" || len(id) > maxQueryLength {
		handleError(w, apperrors.NewValidationError("restaurant ID is required"))
		return
	}

	restaurant, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, restaurant, nil)
}

// GetRandom handles GET /api/restaurants/random
func (h *RestaurantHandler) GetRandom(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.service.GetRandom(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, restaurant, nil)
}

// GetSimilar handles GET /api/restaurants/{id}/similar
func (h *RestaurantHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" || len(id) > maxQueryLength {
		handleError(w, apperrors.NewValidationError("restaurant ID is required"))
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSimilarLimit {
			handleError(w, apperrors.NewValidationError(
				fmt.Sprintf("limit must be an integer between 1 and %d", maxSimilarLimit)))
			return
		}
		limit = parsed
	}

	similar, err := h.service.GetSimilar(r.Context(), id, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, similar, nil)
}

// GetFilters handles GET /api/restaurants/filters
func (h *RestaurantHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.FilterOptions(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, options, nil)
}

// parseSearchParams decodes and validates the search query string into
// well-typed params. Anything out of bounds is rejected here and never
// reaches the core.
func parseSearchParams(query url.Values) (*entities.SearchParams, error) {
	params := &entities.SearchParams{
		Query:    query.Get("q"),
		District: query.Get("district"),
		Category: query.Get("category"),
		Page:     entities.DefaultPage,
		Limit:    entities.DefaultLimit,
		Sort:     entities.SortByName,
		Order:    entities.OrderAsc,
	}

	if len(params.Query) > maxQueryLength {
		return nil, apperrors.NewValidationError("q must be at most 200 characters")
	}
	if len(params.District) > maxFacetLength {
		return nil, apperrors.NewValidationError("district must be at most 100 characters")
	}
	if len(params.Category) > maxFacetLength {
		return nil, apperrors.NewValidationError("category must be at most 100 characters")
	}

	var err error
	if params.MinPrice, err = parsePriceBound(query.Get("minPrice"), "minPrice"); err != nil {
		return nil, err
	}
	if params.MaxPrice, err = parsePriceBound(query.Get("maxPrice"), "maxPrice"); err != nil {
		return nil, err
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, apperrors.NewValidationError("page must be a positive integer")
		}
		params.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxSearchLimit {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("limit must be an integer between 1 and %d", maxSearchLimit))
		}
		params.Limit = limit
	}

	if raw := query.Get("sort"); raw != "" {
		switch entities.SortField(raw) {
		case entities.SortByName, entities.SortByPrice, entities.SortByDistrict:
			params.Sort = entities.SortField(raw)
		default:
			return nil, apperrors.NewValidationError("sort must be one of: name, price, district")
		}
	}

	if raw := query.Get("order"); raw != "" {
		switch entities.SortOrder(raw) {
		case entities.OrderAsc, entities.OrderDesc:
			params.Order = entities.SortOrder(raw)
		default:
			return nil, apperrors.NewValidationError("order must be asc or desc")
		}
	}

	return params, nil
}

func parsePriceBound(raw, field string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 || value > maxPriceFilterVND {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("%s must be an integer between 0 and %d", field, maxPriceFilterVND))
	}
	return &value, nil
}

// handleError maps application errors onto HTTP statuses and the error envelope
func handleError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr)
		default:
			respondWithError(w, http.StatusInternalServerError, appErr)
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError,
		apperrors.NewInternalError("internal server error", err))
}

// responseMeta carries paging information alongside list payloads
type responseMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Meta    *responseMeta `json:"meta,omitempty"`
	Error   *errorBody    `json:"error,omitempty"`
}

func respondWithData(w http.ResponseWriter, statusCode int, data interface{}, meta *responseMeta) {
	respondWithJSON(w, statusCode, apiResponse{Success: true, Data: data, Meta: meta})
}

func respondWithError(w http.ResponseWriter, statusCode int, appErr *apperrors.AppError) {
	respondWithJSON(w, statusCode, apiResponse{
		Success: false,
		Error:   &errorBody{Code: string(appErr.Type), Message: appErr.Message},
	})
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
