package mcp

import (
	"github.com/driftline-labs/lakesearch/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server calls.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs federated catalog searches.
	Search driving.SearchService

	// Backend reports search backend health.
	Backend driving.BackendService

	// History lists recent searches.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Backend and History are optional; their tools and resources
	// degrade when absent.
	return nil
}
