package csvsource

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/saigon-food-map/backend/internal/domain/entities"
	apperrors "github.com/saigon-food-map/backend/pkg/errors"
)

// Loader ingests the known spreadsheet exports into canonical records
type Loader struct {
	formats []sourceFormat
}

// NewLoader creates a loader for the two known dataset layouts
func NewLoader() *Loader {
	return &Loader{formats: defaultFormats()}
}

// LoadAll parses every source file present under dataDir and returns the
// merged collection. An absent file means that dataset is simply missing
// from the collection; it is logged, never an error. If no file exists at
// all the result is an empty collection.
func (l *Loader) LoadAll(ctx context.Context, dataDir string) ([]*entities.Restaurant, error) {
	restaurants := make([]*entities.Restaurant, 0)

	for _, format := range l.formats {
		path := filepath.Join(dataDir, format.file)
		if _, err := os.Stat(path); err != nil {
			log.Warn().
				Str("file", format.file).
				Str("source", string(format.source)).
				Msg("source file absent, skipping dataset")
			continue
		}

		records, err := parseFile(path, format)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to parse "+format.file, err)
		}

		log.Info().
			Str("source", string(format.source)).
			Int("count", len(records)).
			Msg("dataset loaded")

		restaurants = append(restaurants, records...)
	}

	log.Info().Int("total", len(restaurants)).Msg("ingestion complete")
	return restaurants, nil
}

// parseFile reads one CSV export and maps its rows through the format's
// row mapper. Row indices count kept rows only, offset per format, so the
// merged collection never sees an ID collision between datasets.
func parseFile(path string, format sourceFormat) ([]*entities.Restaurant, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data := string(content)
	if format.skipTitle {
		// First line is a decorative sheet title, the header comes second.
		if i := strings.IndexByte(data, '\n'); i >= 0 {
			data = data[i+1:]
		}
	}

	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	for i, column := range header {
		header[i] = strings.TrimSpace(column)
	}

	restaurants := make([]*entities.Restaurant, 0, len(rows)-1)
	index := 0
	for _, cells := range rows[1:] {
		row := toRawRow(header, cells)
		if len(row) == 0 {
			continue
		}
		if format.keepRow != nil && !format.keepRow(row) {
			continue
		}
		restaurants = append(restaurants, format.mapRow(row, format.indexOffset+index))
		index++
	}

	return restaurants, nil
}

// toRawRow zips one row's cells with the header. Blank rows come back empty
// so the caller can skip them.
func toRawRow(header, cells []string) rawRow {
	row := make(rawRow, len(header))
	empty := true
	for i, cell := range cells {
		if i >= len(header) {
			break
		}
		if strings.TrimSpace(cell) != "" {
			empty = false
		}
		row[header[i]] = cell
	}
	if empty {
		return nil
	}
	return row
}
