package services

import (
	"strings"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// applyPostFilters enforces the constraints a backend did not enforce
// itself: the extension allow-list and the size bounds. Package results
// are exempt from extension filtering since they have no extension of
// their own. Pure function; the input slice is not mutated.
func applyPostFilters(results []domain.SearchResult, filters domain.Filters) []domain.SearchResult {
	if filters.IsZero() {
		return results
	}

	allowed := make(map[string]bool, len(filters.Extensions))
	for _, ext := range filters.Extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if len(allowed) > 0 && r.Type != domain.ResultPackage && !allowed[strings.ToLower(r.Extension)] {
			continue
		}
		if filters.SizeMin != nil && r.Size < *filters.SizeMin {
			continue
		}
		if filters.SizeMax != nil && r.Size > *filters.SizeMax {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// truncateResults caps the result list at limit, preserving order.
func truncateResults(results []domain.SearchResult, limit int) []domain.SearchResult {
	if limit <= 0 || len(results) <= limit {
		return results
	}
	return results[:limit]
}
