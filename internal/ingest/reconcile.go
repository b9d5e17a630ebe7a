package ingest

import (
	"strconv"
	"strings"

	"reelstore/internal/tmdb"
)

// ParseTitleYear splits a label like "Heat (1995)" into its title and year.
// A label without a trailing parenthesized integer, or with a malformed
// token, yields the whole label as the title and year 0.
func ParseTitleYear(label string) (string, int) {
	label = strings.TrimSpace(label)
	if !strings.HasSuffix(label, ")") {
		return label, 0
	}
	open := strings.LastIndex(label, "(")
	if open < 0 {
		return label, 0
	}
	token := strings.TrimSpace(label[open+1 : len(label)-1])
	year, err := strconv.Atoi(token)
	if err != nil {
		return label, 0
	}
	title := strings.TrimSpace(label[:open])
	if title == "" {
		return label, 0
	}
	return title, year
}

// BestMatch selects a candidate from provider-ranked search results. With a
// known year it prefers an exact year match, then a match within one year,
// and otherwise falls back to the first result. Results are never re-ranked;
// the first qualifying result of a tier wins. It returns false only when
// there are no results at all.
func BestMatch(results []tmdb.SearchResult, year int) (tmdb.SearchResult, bool) {
	if len(results) == 0 {
		return tmdb.SearchResult{}, false
	}
	if year > 0 {
		for _, result := range results {
			if result.Year() == year {
				return result, true
			}
		}
		for _, result := range results {
			candidate := result.Year()
			if candidate == 0 {
				continue
			}
			if diff := candidate - year; diff >= -1 && diff <= 1 {
				return result, true
			}
		}
	}
	return results[0], true
}
