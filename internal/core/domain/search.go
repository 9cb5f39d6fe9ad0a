package domain

import "fmt"

// Scope identifies which slice of the catalog a search runs against.
type Scope string

const (
	// ScopeFile searches loose objects in bucket indices.
	ScopeFile Scope = "file"
	// ScopePackage searches package-level metadata.
	ScopePackage Scope = "package"
	// ScopePackageEntry searches individual entries inside packages.
	ScopePackageEntry Scope = "packageEntry"
	// ScopeGlobal searches objects and package entries together.
	ScopeGlobal Scope = "global"
)

// ParseScope validates a scope string. An empty string defaults to
// ScopeGlobal; anything else unknown is ErrInvalidScope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeFile, ScopePackage, ScopePackageEntry, ScopeGlobal:
		return Scope(s), nil
	case "":
		return ScopeGlobal, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
}

// BackendAuto asks the engine to pick a backend itself.
const BackendAuto = "auto"

// SearchOptions configures a search query.
type SearchOptions struct {
	// Scope selects what to search. Empty means global.
	Scope Scope

	// Target restricts the search to a single bucket. Empty means all
	// buckets the session can see.
	Target string

	// Backend overrides backend selection. "auto" (or empty) lets the
	// engine choose; otherwise a BackendType string.
	Backend string

	// Filters are caller-supplied constraints, merged over anything the
	// analyzer extracts from the query text.
	Filters Filters

	// Limit is the maximum number of results. Zero means the default.
	Limit int

	// IncludeMetadata attaches backend-specific metadata to each result.
	IncludeMetadata bool

	// Explain attaches query analysis and execution detail to the response.
	Explain bool
}
