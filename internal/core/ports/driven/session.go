package driven

import "context"

// Session provides the authenticated catalog session backends depend on.
// Implementations handle credential storage, token expiry and the
// accessible-bucket enumeration.
type Session interface {
	// IsAvailable reports whether a usable session exists right now.
	// It never blocks on the network.
	IsAvailable(ctx context.Context) bool

	// AuthHeaders returns the headers that authenticate an outbound
	// request. Returns domain.ErrAuthRequired when no session exists.
	AuthHeaders(ctx context.Context) (map[string]string, error)

	// ListBuckets enumerates the buckets the session may read. Results
	// are cached; force bypasses the cache and refreshes it.
	ListBuckets(ctx context.Context, force bool) ([]string, error)

	// CatalogBase returns the catalog's base URL.
	CatalogBase() string
}
