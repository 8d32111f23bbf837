package memory

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/saigon-food-map/backend/internal/domain/entities"
	apperrors "github.com/saigon-food-map/backend/pkg/errors"
	"github.com/saigon-food-map/backend/pkg/normalize"
)

// DefaultSimilarLimit caps similarity lookups when the caller passes none
const DefaultSimilarLimit = 5

// priceBuckets are the fixed human-readable filter labels the UI offers.
// They are independent of whatever prices the data actually contains.
var priceBuckets = []string{"< 30k", "30k - 50k", "50k - 100k", "> 100k"}

// RestaurantStore serves queries over an immutable snapshot of the loaded
// collection. Reload builds a complete new slice and publishes it with a
// single atomic pointer swap: a reader racing a reload observes either the
// old or the new collection, never a partially built one. Records are never
// mutated after ingestion, so snapshots need no copying on read.
type RestaurantStore struct {
	snapshot atomic.Pointer[[]*entities.Restaurant]
}

// NewRestaurantStore creates an empty store
func NewRestaurantStore() *RestaurantStore {
	s := &RestaurantStore{}
	empty := make([]*entities.Restaurant, 0)
	s.snapshot.Store(&empty)
	return s
}

// Current returns whatever collection is currently published
func (s *RestaurantStore) Current() []*entities.Restaurant {
	return *s.snapshot.Load()
}

// Replace atomically publishes a freshly ingested collection
func (s *RestaurantStore) Replace(collection []*entities.Restaurant) {
	if collection == nil {
		collection = make([]*entities.Restaurant, 0)
	}
	s.snapshot.Store(&collection)
}

// Search filters, sorts and paginates the current snapshot.
func (s *RestaurantStore) Search(ctx context.Context, params entities.SearchParams) (*entities.SearchResult, error) {
	params.ApplyDefaults()

	results := s.filter(params)
	sortRestaurants(results, params.Sort, params.Order)

	total := len(results)
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))

	start := (params.Page - 1) * params.Limit
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	return &entities.SearchResult{
		Restaurants: results[start:end],
		Total:       total,
		Page:        params.Page,
		Limit:       params.Limit,
		TotalPages:  totalPages,
	}, nil
}

// filter applies, in order: free-text terms, district equality, category
// equality, price overlap. The result is a fresh slice so sorting never
// touches the shared snapshot.
func (s *RestaurantStore) filter(params entities.SearchParams) []*entities.Restaurant {
	current := s.Current()
	results := make([]*entities.Restaurant, 0, len(current))

	terms := strings.Fields(strings.ToLower(params.Query))
	district := strings.ToLower(params.District)
	category := strings.ToLower(params.Category)
	priceFiltered := params.MinPrice != nil || params.MaxPrice != nil

	for _, r := range current {
		if len(terms) > 0 && !matchesTerms(r, terms) {
			continue
		}
		if district != "" && strings.ToLower(r.District) != district {
			continue
		}
		if category != "" && strings.ToLower(r.Category) != category {
			continue
		}
		if priceFiltered && !normalize.IsPriceInRange(r.PriceRange, params.MinPrice, params.MaxPrice) {
			continue
		}
		results = append(results, r)
	}

	return results
}

// matchesTerms requires every term to appear as a substring somewhere in
// the record's searchable text (AND semantics, not token matching).
func matchesTerms(r *entities.Restaurant, terms []string) bool {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteByte(' ')
	b.WriteString(r.Dish)
	b.WriteByte(' ')
	b.WriteString(r.Address)
	if r.Note != nil {
		b.WriteByte(' ')
		b.WriteString(*r.Note)
	}
	if r.Review != nil {
		b.WriteByte(' ')
		b.WriteString(*r.Review)
	}
	text := strings.ToLower(b.String())

	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

// sortRestaurants orders results in place. Name and district compare with
// Vietnamese collation; price compares each record's min falling back to
// max falling back to 0, which puts fully unknown prices at the cheap end
// of an ascending sort. The stable sort keeps collection order for ties.
func sortRestaurants(results []*entities.Restaurant, field entities.SortField, order entities.SortOrder) {
	collator := collate.New(language.Vietnamese)

	var compare func(a, b *entities.Restaurant) int
	switch field {
	case entities.SortByPrice:
		compare = func(a, b *entities.Restaurant) int {
			return sortPrice(a.PriceRange) - sortPrice(b.PriceRange)
		}
	case entities.SortByDistrict:
		compare = func(a, b *entities.Restaurant) int {
			return collator.CompareString(a.District, b.District)
		}
	default:
		compare = func(a, b *entities.Restaurant) int {
			return collator.CompareString(a.Name, b.Name)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		cmp := compare(results[i], results[j])
		if order == entities.OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func sortPrice(price entities.PriceRange) int {
	if price.Min != nil {
		return *price.Min
	}
	if price.Max != nil {
		return *price.Max
	}
	return 0
}

// GetByID retrieves one restaurant by exact ID equality.
func (s *RestaurantStore) GetByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	for _, r := range s.Current() {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("restaurant not found")
}

// GetRandom picks one restaurant uniformly at random. An empty collection
// yields a not-found error, never a panic.
func (s *RestaurantStore) GetRandom(ctx context.Context) (*entities.Restaurant, error) {
	current := s.Current()
	if len(current) == 0 {
		return nil, apperrors.NewNotFoundError("no restaurants loaded")
	}
	return current[rand.IntN(len(current))], nil
}

// GetSimilar returns up to limit restaurants sharing the anchor's category
// or district, in collection order, anchor excluded. An unknown anchor
// yields an empty list rather than an error.
func (s *RestaurantStore) GetSimilar(ctx context.Context, id string, limit int) ([]*entities.Restaurant, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	anchor, err := s.GetByID(ctx, id)
	if err != nil {
		return []*entities.Restaurant{}, nil
	}

	similar := make([]*entities.Restaurant, 0, limit)
	for _, r := range s.Current() {
		if r.ID == id {
			continue
		}
		if r.Category == anchor.Category || r.District == anchor.District {
			similar = append(similar, r)
			if len(similar) == limit {
				break
			}
		}
	}
	return similar, nil
}

// FilterOptions returns the distinct districts and categories currently in
// the collection, each sorted with Vietnamese collation, plus the fixed
// price bucket labels.
func (s *RestaurantStore) FilterOptions(ctx context.Context) (*entities.FilterOptions, error) {
	current := s.Current()

	districtSet := make(map[string]struct{})
	categorySet := make(map[string]struct{})
	for _, r := range current {
		districtSet[r.District] = struct{}{}
		categorySet[r.Category] = struct{}{}
	}

	collator := collate.New(language.Vietnamese)
	districts := sortedKeys(districtSet, collator)
	categories := sortedKeys(categorySet, collator)

	return &entities.FilterOptions{
		Districts:   districts,
		Categories:  categories,
		PriceRanges: priceBuckets,
	}, nil
}

func sortedKeys(set map[string]struct{}, collator *collate.Collator) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	collator.SortStrings(keys)
	return keys
}
