package services

import (
	"context"
	"fmt"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is how many records Recent returns by default.
const DefaultHistoryLimit = 20

// HistoryService exposes recorded searches.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service. The store may be nil, in
// which case Recent always returns an empty list.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit past searches, newest first.
func (h *HistoryService) Recent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if h.store == nil {
		return []domain.SearchRecord{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := h.store.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("loading search history: %w", err)
	}
	return records, nil
}
