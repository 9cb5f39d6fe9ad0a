package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
	"github.com/driftline-labs/lakesearch/internal/logger"
)

const (
	// maxPageSize is the catalog's page-size ceiling. A larger caller
	// limit is clamped; only one page is ever fetched.
	maxPageSize = 100

	defaultQueryLimit = 50
)

// Backend searches package metadata through the catalog's GraphQL
// endpoint. Results are always package-typed regardless of scope; it
// cannot see loose objects or entry-level detail.
type Backend struct {
	session driven.Session
	client  *Client

	mu         sync.RWMutex
	lastStatus domain.BackendStatus
}

var _ driven.Backend = (*Backend)(nil)

// New creates the catalog-query backend. No network traffic happens
// until the first health check or search.
func New(session driven.Session) *Backend {
	return &Backend{
		session:    session,
		client:     NewClient(session),
		lastStatus: domain.StatusUnavailable,
	}
}

// Type identifies this adapter.
func (b *Backend) Type() domain.BackendType {
	return domain.BackendCatalogQuery
}

// Status returns the last observed status without probing.
func (b *Backend) Status() domain.BackendStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastStatus
}

// HealthCheck probes the backend by confirming the session and the
// catalog's bucket enumeration.
func (b *Backend) HealthCheck(ctx context.Context) domain.BackendStatus {
	status := domain.StatusAvailable
	if !b.session.IsAvailable(ctx) {
		status = domain.StatusUnavailable
	} else if _, err := b.session.ListBuckets(ctx, false); err != nil {
		logger.Warn("Catalog query health check: %v", err)
		status = domain.StatusError
	}

	b.mu.Lock()
	b.lastStatus = status
	b.mu.Unlock()
	return status
}

// Search runs one package query, fetching a single page.
func (b *Backend) Search(ctx context.Context, query domain.BackendQuery) domain.BackendResponse {
	start := time.Now()
	defer logger.Timing("catalog query", start)
	resp := domain.BackendResponse{
		Backend: domain.BackendCatalogQuery,
		Results: []domain.SearchResult{},
	}

	if !b.session.IsAvailable(ctx) {
		resp.Status = b.setStatus(domain.StatusUnavailable)
		resp.ErrorMessage = "no active catalog session"
		return resp
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	resp.Attempts = 1
	page, err := b.client.SearchPackages(ctx, bucketsFor(query), strings.TrimSpace(query.Text), limit, "")
	if err != nil {
		logger.Error("Catalog package query failed: %v", err)
		resp.Status = b.setStatus(statusFor(err))
		resp.ErrorMessage = errorMessage(err)
		resp.QueryTimeMS = time.Since(start).Milliseconds()
		return resp
	}

	resp.Results = normaliseEdges(page.Edges)
	resp.Status = b.setStatus(domain.StatusAvailable)
	resp.QueryTimeMS = time.Since(start).Milliseconds()
	return resp
}

// bucketsFor picks the bucket-list variable for a query. An explicit
// target wins; otherwise any bucket filter; otherwise nil, meaning
// every bucket the session can see.
func bucketsFor(query domain.BackendQuery) []string {
	if query.Target != "" {
		return []string{query.Target}
	}
	if len(query.Filters.Buckets) > 0 {
		return query.Filters.Buckets
	}
	return nil
}

// normaliseEdges maps catalog edges onto canonical package results,
// silently dropping malformed nodes.
func normaliseEdges(edges []packageEdge) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(edges))
	for _, edge := range edges {
		node := edge.Node
		if node.Name == "" {
			continue
		}

		meta := map[string]any{}
		if node.Pointer != "" {
			meta["pointer"] = node.Pointer
		}
		if node.Hash != "" {
			meta["hash"] = node.Hash
		}
		if node.Modified != "" {
			meta["modified"] = node.Modified
		}

		results = append(results, domain.SearchResult{
			ID:       fmt.Sprintf("%s/%s", node.Bucket, node.Name),
			Type:     domain.ResultPackage,
			Name:     node.Name,
			Bucket:   node.Bucket,
			Location: fmt.Sprintf("%s/%s", node.Bucket, node.Name),
			Size:     node.Size,
			Score:    node.Score,
			Backend:  domain.BackendCatalogQuery,
			Metadata: meta,
		})
	}
	return results
}

func (b *Backend) setStatus(status domain.BackendStatus) domain.BackendStatus {
	b.mu.Lock()
	b.lastStatus = status
	b.mu.Unlock()
	return status
}

// statusFor maps a transport error onto a response status.
func statusFor(err error) domain.BackendStatus {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.StatusTimeout
	case IsUnauthorized(err),
		errors.Is(err, domain.ErrAuthRequired),
		errors.Is(err, domain.ErrAuthExpired):
		return domain.StatusUnavailable
	default:
		return domain.StatusError
	}
}

// errorMessage keeps the catalog's own wording when the error carries
// one, so callers can surface it verbatim.
func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
