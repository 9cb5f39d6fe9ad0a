package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for lakesearch resources.
	uriScheme = "lakesearch://"

	// defaultHistoryWindow bounds the static history resource.
	defaultHistoryWindow = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for backend health.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "backends",
		Name:        "backends",
		Description: "Last-known status of every search backend",
		MIMEType:    "application/json",
	}, s.handleBackendsResource)

	// Static resource for recent searches.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent searches, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Template for a bounded history window.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{limit}",
		Name:        "history-window",
		Description: "Recent searches bounded to the given count",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleBackendsResource returns the status of every registered backend.
func (s *Server) handleBackendsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	statuses := map[string]string{}
	if s.ports.Backend != nil {
		for bt, status := range s.ports.Backend.Statuses() {
			statuses[string(bt)] = string(status)
		}
	}

	data, err := json.MarshalIndent(statuses, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling backend statuses: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleHistoryResource returns recent searches. The URI may carry an
// explicit window as lakesearch://history/{limit}.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	limit, ok := extractHistoryLimit(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.History.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	// Build simplified record list.
	type searchInfo struct {
		Query       string    `json:"query"`
		Scope       string    `json:"scope"`
		Backend     string    `json:"backend,omitempty"`
		ResultCount int       `json:"result_count"`
		QueryTimeMS int64     `json:"query_time_ms"`
		ExecutedAt  time.Time `json:"executed_at"`
	}

	infos := make([]searchInfo, len(records))
	for i := range records {
		infos[i] = searchInfo{
			Query:       records[i].Query,
			Scope:       string(records[i].Scope),
			Backend:     string(records[i].Backend),
			ResultCount: records[i].ResultCount,
			QueryTimeMS: records[i].QueryTimeMS,
			ExecutedAt:  records[i].ExecutedAt,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractHistoryLimit parses the optional window from a history URI.
// lakesearch://history uses the default; lakesearch://history/{limit}
// must carry a positive integer.
func extractHistoryLimit(uri string) (int, bool) {
	const prefix = uriScheme + "history"

	if uri == prefix {
		return defaultHistoryWindow, true
	}
	if !strings.HasPrefix(uri, prefix+"/") {
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimPrefix(uri, prefix+"/"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
