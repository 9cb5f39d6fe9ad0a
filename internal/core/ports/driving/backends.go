package driving

import (
	"context"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// BackendService exposes backend registration state and health.
type BackendService interface {
	// Statuses returns the last-known status of every registered
	// backend without touching the network.
	Statuses() map[domain.BackendType]domain.BackendStatus

	// CheckAll probes every registered backend concurrently and
	// returns the refreshed statuses.
	CheckAll(ctx context.Context) map[domain.BackendType]domain.BackendStatus
}
