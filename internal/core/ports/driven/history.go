package driven

import (
	"context"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// HistoryStore persists search summaries.
type HistoryStore interface {
	// Record saves one completed search. Failures here must never fail
	// the search itself; callers log and move on.
	Record(ctx context.Context, rec domain.SearchRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.SearchRecord, error)

	// Close releases resources.
	Close() error
}
