package domain

import "time"

// SearchRecord is a persisted summary of one completed search. Only the
// summary is stored; result sets live and die with the request.
type SearchRecord struct {
	// ID is the search id assigned by the orchestrator.
	ID string

	// Query is the raw query text.
	Query string

	// Scope the search ran under.
	Scope Scope

	// Backend that served the search. Empty when none ran.
	Backend BackendType

	// ResultCount is the number of results after post-filtering.
	ResultCount int

	// QueryTimeMS is the total engine time.
	QueryTimeMS int64

	// ExecutedAt is when the search completed.
	ExecutedAt time.Time
}
