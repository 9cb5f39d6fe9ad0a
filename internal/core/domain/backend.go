package domain

import "fmt"

// BackendType identifies a search backend implementation.
type BackendType string

const (
	// BackendDocumentSearch is the full-text document index service.
	BackendDocumentSearch BackendType = "document_search"
	// BackendCatalogQuery is the structured catalog query service.
	BackendCatalogQuery BackendType = "catalog_query"
)

// ParseBackendType validates an explicit backend name. BackendAuto is not
// a backend type; callers handle it before parsing.
func ParseBackendType(s string) (BackendType, error) {
	switch BackendType(s) {
	case BackendDocumentSearch, BackendCatalogQuery:
		return BackendType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBackend, s)
}

// BackendStatus is the last-known availability of a backend.
type BackendStatus string

const (
	// StatusAvailable means the backend answered, possibly with zero results.
	StatusAvailable BackendStatus = "available"
	// StatusUnavailable means the backend cannot be used, typically for
	// want of a session.
	StatusUnavailable BackendStatus = "unavailable"
	// StatusError means the backend was reachable but the query failed.
	StatusError BackendStatus = "error"
	// StatusTimeout means the call exceeded its deadline.
	StatusTimeout BackendStatus = "timeout"
	// StatusNotRegistered means no adapter of this type is configured.
	StatusNotRegistered BackendStatus = "not_registered"
)

// BackendQuery is the engine's request to a single backend.
type BackendQuery struct {
	// Text is the free-text query, already stripped of filter phrases.
	Text string

	// Scope selects what to search.
	Scope Scope

	// Target restricts to a single bucket when non-empty.
	Target string

	// Filters are the merged analyzer and caller constraints.
	Filters Filters

	// Limit caps how many results the backend should return.
	Limit int
}

// BackendResponse is the uniform reply from one backend invocation.
// An empty result set with StatusAvailable is an ordinary outcome,
// not a failure.
type BackendResponse struct {
	// Backend identifies which adapter produced this response.
	Backend BackendType

	// Status is the outcome of the invocation.
	Status BackendStatus

	// Results are ordered as the backend ranked them.
	Results []SearchResult

	// QueryTimeMS is the elapsed wall time of the invocation.
	QueryTimeMS int64

	// ErrorMessage preserves the backend's own words when Status is
	// StatusError or StatusTimeout.
	ErrorMessage string

	// IndexPattern records the index expression queried, when the
	// backend builds one. Diagnostic detail for explain mode.
	IndexPattern string

	// Attempts counts query attempts including narrowing retries.
	Attempts int
}

// ResultType classifies a search result.
type ResultType string

const (
	// ResultFile is a loose object in a bucket.
	ResultFile ResultType = "file"
	// ResultPackage is a versioned package revision.
	ResultPackage ResultType = "package"
	// ResultPackageEntry is a logical entry inside a package.
	ResultPackageEntry ResultType = "packageEntry"
)

// SearchResult is the canonical shape every backend normalises to.
// Name carries the full path or namespace/name identifier as a single
// string; it is never split into components.
type SearchResult struct {
	// ID is the backend's identifier for the hit.
	ID string

	// Type classifies the result.
	Type ResultType

	// Name is the canonical path or package identifier. A result with
	// an empty Name is dropped during normalisation.
	Name string

	// Bucket is the bucket the result lives in.
	Bucket string

	// Location is the storage URI of the underlying object.
	Location string

	// Size is the object size in bytes.
	Size int64

	// Extension is the file extension without the dot, lowercased.
	Extension string

	// Score is the backend-native relevance score. Scores are not
	// comparable across backends.
	Score float64

	// Backend identifies the producing backend.
	Backend BackendType

	// Metadata carries backend-specific detail, included in responses
	// only on request.
	Metadata map[string]any
}
