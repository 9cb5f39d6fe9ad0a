package driving

import (
	"context"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// HistoryService exposes recent search activity.
type HistoryService interface {
	// Recent returns up to limit past searches, newest first.
	Recent(ctx context.Context, limit int) ([]domain.SearchRecord, error)
}
