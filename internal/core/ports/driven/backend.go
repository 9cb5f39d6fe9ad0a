package driven

import (
	"context"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// Backend is the uniform contract every search backend adapter satisfies.
// Implementations translate the engine's query into their own wire
// protocol and normalise hits back into domain.SearchResult.
//
// Search never returns a Go error for outcomes the response can express:
// an empty result set is StatusAvailable with zero results, a failed
// query is StatusError with the backend's message preserved, and a
// missing session is StatusUnavailable. The error return is reserved for
// context cancellation surfacing through the transport.
type Backend interface {
	// Type identifies the backend implementation.
	Type() domain.BackendType

	// Status returns the last-known status without touching the network.
	Status() domain.BackendStatus

	// HealthCheck probes the backend and updates the last-known status.
	HealthCheck(ctx context.Context) domain.BackendStatus

	// Search executes one query against this backend.
	Search(ctx context.Context, query domain.BackendQuery) domain.BackendResponse
}
