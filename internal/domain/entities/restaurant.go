package entities

// DataSource identifies which raw dataset a record came from
type DataSource string

const (
	// SourceFoodTour marks records ingested from the Food Tour spreadsheet export
	SourceFoodTour DataSource = "foodtour"

	// SourceSaigonEveryfood marks records ingested from the Saigon Everyfood spreadsheet export
	SourceSaigonEveryfood DataSource = "saigon_everyfood"
)

// PriceRange is the structured form of a free-text price notation.
// Min and Max are in VND; a nil bound means "unspecified in that direction".
// Display always carries the original source text verbatim so clients render
// the curator's phrasing exactly.
type PriceRange struct {
	Min     *int   `json:"min"`
	Max     *int   `json:"max"`
	Display string `json:"display"`
}

// Restaurant is the canonical record produced by ingestion, independent of
// which raw source it came from. Records are never mutated after mapping;
// reload rebuilds the whole collection.
type Restaurant struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Dish         string     `json:"dish"`
	Category     string     `json:"category"`
	Address      string     `json:"address"`
	District     string     `json:"district"`
	OpeningHours *string    `json:"openingHours"`
	PriceRange   PriceRange `json:"priceRange"`
	Note         *string    `json:"note"`
	Review       *string    `json:"review"`
	Feedback     *string    `json:"feedback"`
	Source       DataSource `json:"source"`
}
