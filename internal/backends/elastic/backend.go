package elastic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
	"github.com/driftline-labs/lakesearch/internal/logger"
)

const (
	// maxNarrowRetries bounds the authorization-narrowing retries after
	// the initial full-pattern attempt.
	maxNarrowRetries = 3

	defaultQueryLimit = 50
)

// Backend searches the document index service, one index per bucket
// plus a package index per bucket. When a multi-bucket query is denied
// because the session cannot read one of the indices, the bucket set
// is narrowed one bucket at a time and retried, up to a bound.
type Backend struct {
	session driven.Session
	client  *Client

	mu         sync.RWMutex
	lastStatus domain.BackendStatus
}

var _ driven.Backend = (*Backend)(nil)

// New creates the document-search backend. No network traffic happens
// until the first health check or search.
func New(session driven.Session) *Backend {
	return &Backend{
		session:    session,
		client:     NewClient(session),
		lastStatus: domain.StatusUnavailable,
	}
}

// SetSearchEndpoint overrides the document-search URL derived from the
// catalog base. Call during wiring, before the first search.
func (b *Backend) SetSearchEndpoint(url string) {
	b.client.SetEndpoint(url)
}

// Type identifies this adapter.
func (b *Backend) Type() domain.BackendType {
	return domain.BackendDocumentSearch
}

// Status returns the last observed status without probing.
func (b *Backend) Status() domain.BackendStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastStatus
}

// HealthCheck probes the backend by confirming the session and the
// bucket enumeration it depends on.
func (b *Backend) HealthCheck(ctx context.Context) domain.BackendStatus {
	status := domain.StatusAvailable
	if !b.session.IsAvailable(ctx) {
		status = domain.StatusUnavailable
	} else if _, err := b.session.ListBuckets(ctx, false); err != nil {
		logger.Warn("Document search health check: %v", err)
		status = domain.StatusError
	}

	b.mu.Lock()
	b.lastStatus = status
	b.mu.Unlock()
	return status
}

// Search runs one query, narrowing the bucket set on partial
// authorization failures. Zero hits is a successful outcome.
func (b *Backend) Search(ctx context.Context, query domain.BackendQuery) domain.BackendResponse {
	start := time.Now()
	defer logger.Timing("document search", start)
	resp := domain.BackendResponse{
		Backend: domain.BackendDocumentSearch,
		Results: []domain.SearchResult{},
	}

	if !b.session.IsAvailable(ctx) {
		resp.Status = b.setStatus(domain.StatusUnavailable)
		resp.ErrorMessage = "no active catalog session"
		return resp
	}

	buckets, err := b.resolveBuckets(ctx, query.Target)
	if err != nil {
		resp.Status = b.setStatus(statusFor(err))
		resp.ErrorMessage = errorMessage(err)
		resp.QueryTimeMS = time.Since(start).Milliseconds()
		return resp
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	dsl := buildQuery(query.Text, query.Filters)

	working := append([]string(nil), buckets...)
	narrows := 0
	for {
		pattern, err := BuildIndexPattern(query.Scope, working)
		if err != nil {
			resp.Status = b.setStatus(domain.StatusError)
			resp.ErrorMessage = err.Error()
			resp.QueryTimeMS = time.Since(start).Milliseconds()
			return resp
		}
		resp.IndexPattern = pattern
		if pattern == "" {
			resp.Status = b.setStatus(domain.StatusAvailable)
			resp.QueryTimeMS = time.Since(start).Milliseconds()
			return resp
		}

		resp.Attempts++
		result, err := b.client.Search(ctx, pattern, dsl, limit)
		if err == nil {
			resp.Results = normaliseHits(query.Scope, result.Hits.Hits)
			resp.Status = b.setStatus(domain.StatusAvailable)
			resp.QueryTimeMS = time.Since(start).Milliseconds()
			return resp
		}

		if narrowed, ok := b.narrow(err, working, narrows); ok {
			logger.Debug("Narrowing %d buckets to %d after authorization failure", len(working), len(narrowed))
			working = narrowed
			narrows++
			continue
		}

		logger.Error("Document search failed after %d attempt(s): %v", resp.Attempts, err)
		resp.Status = b.setStatus(statusFor(err))
		resp.ErrorMessage = errorMessage(err)
		resp.QueryTimeMS = time.Since(start).Milliseconds()
		return resp
	}
}

// resolveBuckets picks the bucket set for a query: the explicit target
// when given, otherwise everything the session can see.
func (b *Backend) resolveBuckets(ctx context.Context, target string) ([]string, error) {
	if target != "" {
		return []string{target}, nil
	}
	buckets, err := b.session.ListBuckets(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}
	return buckets, nil
}

// narrow decides whether a failed attempt warrants a retry with one
// bucket removed. A bucket leaves the working set permanently. The
// offending bucket comes from the service's error message when it
// names one, else the last bucket is dropped.
func (b *Backend) narrow(err error, working []string, narrows int) ([]string, bool) {
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		return nil, false
	}
	if narrows >= maxNarrowRetries || len(working) <= 1 {
		return nil, false
	}

	offender := bucketFromIndex(authErr.Index)
	narrowed := removeBucket(working, offender)
	if len(narrowed) == len(working) {
		narrowed = working[:len(working)-1]
	}
	return narrowed, true
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
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrAuthExpired):
		return domain.StatusUnavailable
	default:
		return domain.StatusError
	}
}

// errorMessage keeps the service's own wording when the error carries
// one, so callers can surface it verbatim.
func errorMessage(err error) string {
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return queryErr.Message
	}
	var authErr *AuthorizationError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return err.Error()
}
