package entities

// SortField selects the attribute search results are ordered by
type SortField string

const (
	SortByName     SortField = "name"
	SortByPrice    SortField = "price"
	SortByDistrict SortField = "district"
)

// SortOrder selects ascending or descending ordering
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Search defaults applied when the caller leaves a field unset
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// SearchParams captures one query intent against the collection. The zero
// value is not usable directly; call ApplyDefaults (or construct via the
// transport layer, which validates bounds before the params reach the core).
type SearchParams struct {
	Query    string
	District string
	Category string
	MinPrice *int
	MaxPrice *int
	Page     int
	Limit    int
	Sort     SortField
	Order    SortOrder
}

// ApplyDefaults fills unset paging and ordering fields with their defaults:
// page=1, limit=20, sort=name, order=asc.
func (p *SearchParams) ApplyDefaults() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Sort == "" {
		p.Sort = SortByName
	}
	if p.Order == "" {
		p.Order = OrderAsc
	}
}

// SearchResult is one ordered page of matches plus paging metadata. Total is
// the pre-pagination match count and TotalPages is ceil(Total/Limit).
type SearchResult struct {
	Restaurants []*Restaurant `json:"restaurants"`
	Total       int           `json:"total"`
	Page        int           `json:"page"`
	Limit       int           `json:"limit"`
	TotalPages  int           `json:"totalPages"`
}

// FilterOptions lists the facet values currently present in the collection.
// PriceRanges is a fixed set of human-readable bucket labels, independent of
// the data.
type FilterOptions struct {
	Districts   []string `json:"districts"`
	Categories  []string `json:"categories"`
	PriceRanges []string `json:"priceRanges"`
}
