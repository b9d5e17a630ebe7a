package ingest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Request is one item of an import batch. UserRating is the raw star value
// from the export, nil when the user never rated the film.
type Request struct {
	TitleYear  string   `json:"title_year"`
	UserRating *float64 `json:"user_rating"`
	UserLiked  bool     `json:"user_liked"`
}

// ReadExportFile loads a Letterboxd-style export: a JSON array of import
// requests.
func ReadExportFile(path string) ([]Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}
	var items []Request
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse export file %s: %w", path, err)
	}
	return items, nil
}
