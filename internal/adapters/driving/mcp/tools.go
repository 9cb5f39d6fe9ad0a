package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// CatalogSearchInput is the input schema for the catalog_search tool.
type CatalogSearchInput struct {
	Query           string         `json:"query" jsonschema:"the search query; constraints like extensions, sizes and dates may be written in plain language"`
	Scope           string         `json:"scope,omitempty" jsonschema:"what to search: file, package, packageEntry or global (default global)"`
	Target          string         `json:"target,omitempty" jsonschema:"restrict the search to one bucket"`
	Backend         string         `json:"backend,omitempty" jsonschema:"backend to use: auto, document_search or catalog_query (default auto)"`
	Limit           int            `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Filters         map[string]any `json:"filters,omitempty" jsonschema:"explicit filters: extension(s), size_min, size_max, created_after, created_before, bucket or buckets"`
	IncludeMetadata bool           `json:"include_metadata,omitempty" jsonschema:"attach backend-specific metadata to each result"`
	Explain         bool           `json:"explain,omitempty" jsonschema:"attach query analysis and execution detail to the response"`
}

// BackendStatusInput is the input schema for the backend_status tool.
type BackendStatusInput struct {
	Check bool `json:"check,omitempty" jsonschema:"probe each backend over the network instead of reporting cached status"`
}

// BackendStatusOutput is the output schema for the backend_status tool.
type BackendStatusOutput struct {
	Backends map[string]string `json:"backends"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "catalog_search",
		Description: "Search the data catalog for files, packages and package entries. " +
			"Failures such as a missing login are reported inside the response " +
			"(success=false plus error_category), not as tool errors.",
	}, s.handleCatalogSearch)

	if s.ports.Backend != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "backend_status",
			Description: "Report the status of each search backend",
		}, s.handleBackendStatus)
	}
}

// handleCatalogSearch handles the catalog_search tool invocation.
func (s *Server) handleCatalogSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CatalogSearchInput,
) (*mcp.CallToolResult, domain.SearchResponse, error) {
	scope, err := domain.ParseScope(input.Scope)
	if err != nil {
		return nil, domain.SearchResponse{}, err
	}

	filters, err := domain.ParseFilters(input.Filters)
	if err != nil {
		return nil, domain.SearchResponse{}, err
	}

	opts := domain.SearchOptions{
		Scope:           scope,
		Target:          input.Target,
		Backend:         input.Backend,
		Filters:         filters,
		Limit:           input.Limit,
		IncludeMetadata: input.IncludeMetadata,
		Explain:         input.Explain,
	}

	resp, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, domain.SearchResponse{}, fmt.Errorf("searching catalog: %w", err)
	}

	return nil, *resp, nil
}

// handleBackendStatus handles the backend_status tool invocation.
func (s *Server) handleBackendStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BackendStatusInput,
) (*mcp.CallToolResult, BackendStatusOutput, error) {
	var statuses map[domain.BackendType]domain.BackendStatus
	if input.Check {
		statuses = s.ports.Backend.CheckAll(ctx)
	} else {
		statuses = s.ports.Backend.Statuses()
	}

	output := BackendStatusOutput{Backends: make(map[string]string, len(statuses))}
	for bt, status := range statuses {
		output.Backends[string(bt)] = string(status)
	}

	return nil, output, nil
}
