package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saigon-food-map/backend/internal/domain/entities"
	apperrors "github.com/saigon-food-map/backend/pkg/errors"
	"github.com/saigon-food-map/backend/pkg/normalize"
)

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func testCollection() []*entities.Restaurant {
	return []*entities.Restaurant{
		{
			ID:         "com-tam-ba-ghien-0",
			Name:       "Cơm tấm Ba Ghiền",
			Dish:       "Cơm tấm sườn bì chả",
			Category:   "Cơm",
			Address:    "84 Đặng Văn Ngữ",
			District:   "Quận Phú Nhuận",
			PriceRange: normalize.ParsePrice("20k-25k"),
			Note:       strPtr("đông khách giờ trưa"),
			Source:     entities.SourceFoodTour,
		},
		{
			ID:         "banh-mi-huynh-hoa-1",
			Name:       "Bánh mì Huỳnh Hoa",
			Dish:       "Bánh mì thập cẩm",
			Category:   "Bánh mì",
			Address:    "26 Lê Thị Riêng",
			District:   "Quận 1",
			PriceRange: normalize.ParsePrice("Nhiều giá"),
			Source:     entities.SourceFoodTour,
		},
		{
			ID:         "tra-sua-phuc-long-1000",
			Name:       "Trà sữa Phúc Long",
			Dish:       "Trà sữa Phúc Long",
			Category:   "Cafe",
			Address:    "42 Ngô Đức Kế",
			District:   "Quận 1",
			PriceRange: normalize.ParsePrice("< 50k"),
			Review:     strPtr("ngon mà hơi ngọt"),
			Source:     entities.SourceSaigonEveryfood,
		},
		{
			ID:         "an-phu-quan-2",
			Name:       "An Phú Quán",
			Dish:       "Lẩu bò",
			Category:   "Lẩu",
			Address:    "12 Thảo Điền",
			District:   "TP. Thủ Đức",
			PriceRange: normalize.ParsePrice("280k-350k-450k"),
			Source:     entities.SourceFoodTour,
		},
	}
}

func loadedStore() *RestaurantStore {
	store := NewRestaurantStore()
	store.Replace(testCollection())
	return store
}

func TestSearch_TextTermsAreANDed(t *testing.T) {
	store := loadedStore()

	result, err := store.Search(context.Background(), entities.SearchParams{Query: "cơm sườn"})
	require.NoError(t, err)
	require.Len(t, result.Restaurants, 1)
	assert.Equal(t, "Cơm tấm Ba Ghiền", result.Restaurants[0].Name)

	// One term matching is not enough.
	result, err = store.Search(context.Background(), entities.SearchParams{Query: "cơm pasteur"})
	require.NoError(t, err)
	assert.Empty(t, result.Restaurants)
}

func TestSearch_TextMatchesNoteAndReview(t *testing.T) {
	store := loadedStore()

	result, err := store.Search(context.Background(), entities.SearchParams{Query: "giờ trưa"})
	require.NoError(t, err)
	require.Len(t, result.Restaurants, 1)
	assert.Equal(t, "com-tam-ba-ghien-0", result.Restaurants[0].ID)

	result, err = store.Search(context.Background(), entities.SearchParams{Query: "hơi ngọt"})
	require.NoError(t, err)
	require.Len(t, result.Restaurants, 1)
	assert.Equal(t, "tra-sua-phuc-long-1000", result.Restaurants[0].ID)
}

func TestSearch_DistrictAndCategoryAreCaseInsensitive(t *testing.T) {
	store := loadedStore()

	result, err := store.Search(context.Background(), entities.SearchParams{District: "quận 1"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	result, err = store.Search(context.Background(), entities.SearchParams{Category: "cafe"})
	require.NoError(t, err)
	require.Len(t, result.Restaurants, 1)
	assert.Equal(t, "Trà sữa Phúc Long", result.Restaurants[0].Name)
}

func TestSearch_PriceFilterUsesOverlap(t *testing.T) {
	store := loadedStore()

	// 20k-25k overlaps [10k, 22k] even though it is not contained in it.
	result, err := store.Search(context.Background(), entities.SearchParams{
		MinPrice: intPtr(10000),
		MaxPrice: intPtr(22000),
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Restaurants))
	for _, r := range result.Restaurants {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, "com-tam-ba-ghien-0")
	// Unknown prices are never excluded.
	assert.Contains(t, ids, "banh-mi-huynh-hoa-1")
	// 280k-450k sits entirely above the requested range.
	assert.NotContains(t, ids, "an-phu-quan-2")
}

func TestSearch_SortByNameUsesVietnameseCollation(t *testing.T) {
	store := loadedStore()

	result, err := store.Search(context.Background(), entities.SearchParams{
		Sort:  entities.SortByName,
		Order: entities.OrderAsc,
	})
	require.NoError(t, err)
	require.Len(t, result.Restaurants, 4)

	names := []string{
		result.Restaurants[0].Name,
		result.Restaurants[1].Name,
		result.Restaurants[2].Name,
		result.Restaurants[3].Name,
	}
	assert.Equal(t, []string{
		"An Phú Quán",
		"Bánh mì Huỳnh Hoa",
		"Cơm tấm Ba Ghiền",
		"Trà sữa Phúc Long",
	}, names)
}

func TestSearch_SortByPricePutsUnknownPricesFirst(t *testing.T) {
	store := loadedStore()

	result, err := store.Search(context.Background(), entities.SearchParams{
		Sort:  entities.SortByPrice,
		Order: entities.OrderAsc,
	})
	require.NoError(t, err)
	require.Len(t, result.Restaurants, 4)

	// A fully unknown price compares as 0, so it lands at the cheap end of
	// an ascending sort. "< 50k" has no min and falls back to its max.
	assert.Equal(t, "banh-mi-huynh-hoa-1", result.Restaurants[0].ID)
	assert.Equal(t, "com-tam-ba-ghien-0", result.Restaurants[1].ID)
	assert.Equal(t, "tra-sua-phuc-long-1000", result.Restaurants[2].ID)
	assert.Equal(t, "an-phu-quan-2", result.Restaurants[3].ID)
}

func TestSearch_DescendingFlipsOrder(t *testing.T) {
	store := loadedStore()

	result, err := store.Search(context.Background(), entities.SearchParams{
		Sort:  entities.SortByPrice,
		Order: entities.OrderDesc,
	})
	require.NoError(t, err)
	require.Len(t, result.Restaurants, 4)
	assert.Equal(t, "an-phu-quan-2", result.Restaurants[0].ID)
	assert.Equal(t, "banh-mi-huynh-hoa-1", result.Restaurants[3].ID)
}

func TestSearch_Pagination(t *testing.T) {
	store := NewRestaurantStore()
	collection := make([]*entities.Restaurant, 0, 45)
	for i := 0; i < 45; i++ {
		collection = append(collection, &entities.Restaurant{
			ID:       fmt.Sprintf("r-%d", i),
			Name:     fmt.Sprintf("Quán %02d", i),
			Category: "Cơm",
			District: "Quận 1",
		})
	}
	store.Replace(collection)

	result, err := store.Search(context.Background(), entities.SearchParams{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, result.Restaurants, 5)
	assert.Equal(t, 45, result.Total)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, 3, result.TotalPages)

	// A page past the end is empty, not an error.
	result, err = store.Search(context.Background(), entities.SearchParams{Page: 9, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, result.Restaurants)
	assert.Equal(t, 45, result.Total)
}

func TestSearch_PageNeverExceedsLimit(t *testing.T) {
	store := loadedStore()

	for _, limit := range []int{1, 2, 3, 100} {
		result, err := store.Search(context.Background(), entities.SearchParams{Limit: limit})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.Restaurants), limit)
	}
}

func TestSearch_Defaults(t *testing.T) {
	store := loadedStore()

	result, err := store.Search(context.Background(), entities.SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, entities.DefaultLimit, result.Limit)
}

func TestGetByID(t *testing.T) {
	store := loadedStore()

	restaurant, err := store.GetByID(context.Background(), "tra-sua-phuc-long-1000")
	require.NoError(t, err)
	assert.Equal(t, "Trà sữa Phúc Long", restaurant.Name)

	_, err = store.GetByID(context.Background(), "does-not-exist")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestGetRandom(t *testing.T) {
	store := loadedStore()

	restaurant, err := store.GetRandom(context.Background())
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, r := range store.Current() {
		ids[r.ID] = true
	}
	assert.True(t, ids[restaurant.ID])
}

func TestGetRandom_EmptyCollection(t *testing.T) {
	store := NewRestaurantStore()

	_, err := store.GetRandom(context.Background())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestGetSimilar(t *testing.T) {
	store := loadedStore()

	// Anchor in Quận 1: the other Quận 1 record is similar by district.
	similar, err := store.GetSimilar(context.Background(), "banh-mi-huynh-hoa-1", 5)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "tra-sua-phuc-long-1000", similar[0].ID)
}

func TestGetSimilar_NeverIncludesAnchor(t *testing.T) {
	store := loadedStore()

	for _, r := range store.Current() {
		similar, err := store.GetSimilar(context.Background(), r.ID, 10)
		require.NoError(t, err)
		for _, s := range similar {
			assert.NotEqual(t, r.ID, s.ID)
		}
	}
}

func TestGetSimilar_RespectsLimitAndOrder(t *testing.T) {
	store := NewRestaurantStore()
	collection := make([]*entities.Restaurant, 0, 10)
	for i := 0; i < 10; i++ {
		collection = append(collection, &entities.Restaurant{
			ID:       fmt.Sprintf("r-%d", i),
			Name:     fmt.Sprintf("Quán %d", i),
			Category: "Cơm",
			District: "Quận 1",
		})
	}
	store.Replace(collection)

	similar, err := store.GetSimilar(context.Background(), "r-0", 3)
	require.NoError(t, err)
	require.Len(t, similar, 3)
	// Collection order, no ranking among equally similar candidates.
	assert.Equal(t, "r-1", similar[0].ID)
	assert.Equal(t, "r-2", similar[1].ID)
	assert.Equal(t, "r-3", similar[2].ID)
}

func TestGetSimilar_UnknownAnchor(t *testing.T) {
	store := loadedStore()

	similar, err := store.GetSimilar(context.Background(), "does-not-exist", 5)
	require.NoError(t, err)
	assert.Empty(t, similar)
}

func TestFilterOptions(t *testing.T) {
	store := loadedStore()

	options, err := store.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Quận 1", "Quận Phú Nhuận", "TP. Thủ Đức"}, options.Districts)
	assert.Equal(t, []string{"Bánh mì", "Cafe", "Cơm", "Lẩu"}, options.Categories)
	assert.Equal(t, []string{"< 30k", "30k - 50k", "50k - 100k", "> 100k"}, options.PriceRanges)
}

func TestReplace_ReadersSeeOldOrNewSnapshotOnly(t *testing.T) {
	store := NewRestaurantStore()
	old := testCollection()
	store.Replace(old)

	bigger := append(testCollection(), &entities.Restaurant{
		ID:       "extra-5",
		Name:     "Hủ tiếu Nam Vang",
		Category: "Món nước",
		District: "Quận 5",
	})

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				n := len(store.Current())
				// Either snapshot is fine; a half-built one never is.
				assert.True(t, n == len(old) || n == len(bigger))
			}
		}()
	}

	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			store.Replace(bigger)
		} else {
			store.Replace(old)
		}
	}
	close(stop)
	wg.Wait()
}
