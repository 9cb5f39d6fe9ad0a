// Package domain defines the core business entities for Lakesearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchOptions: A caller's search request parameters
//   - QueryAnalysis: Classified intent and extracted filters for a query
//   - BackendQuery / BackendResponse: The contract between the engine
//     and a search backend
//   - SearchResult: The canonical result shape all backends normalise to
//   - SearchResponse: The serialisable response returned to callers
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
