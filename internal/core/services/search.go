package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driving"
	"github.com/driftline-labs/lakesearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const (
	// DefaultLimit caps result counts when the caller does not.
	DefaultLimit = 50

	// DefaultBackendTimeout bounds a single backend invocation.
	DefaultBackendTimeout = 30 * time.Second
)

// SearchService is the federated search orchestrator: analyze the query,
// select one backend, invoke it under a timeout, post-filter and truncate.
// It never mutates catalog state.
type SearchService struct {
	analyzer *Analyzer
	registry *BackendRegistry
	history  driven.HistoryStore
	timeout  time.Duration
}

// NewSearchService creates a new search orchestrator.
func NewSearchService(analyzer *Analyzer, registry *BackendRegistry) *SearchService {
	return &SearchService{
		analyzer: analyzer,
		registry: registry,
		timeout:  DefaultBackendTimeout,
	}
}

// SetHistoryStore enables best-effort search history recording.
// The store is optional; recording failures never fail a search.
func (s *SearchService) SetHistoryStore(store driven.HistoryStore) {
	s.history = store
}

// SetTimeout overrides the per-call backend timeout.
func (s *SearchService) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// Search runs one query end to end. Failures the response taxonomy
// covers (no session, no applicable backend, backend errors) come back
// inside the response with Success=false. The error return is reserved
// for caller bugs: an invalid scope or backend name.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	searchID := uuid.NewString()
	logger.Section("Search Execution")
	logger.Debug("Search %s: query=%q", searchID, query)

	scope, err := domain.ParseScope(string(opts.Scope))
	if err != nil {
		return nil, err
	}
	if opts.Backend != "" && opts.Backend != domain.BackendAuto {
		if _, err := domain.ParseBackendType(opts.Backend); err != nil {
			return nil, err
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	logger.Debug("Scope: %s, Target: %q, Limit: %d", scope, opts.Target, limit)

	start := time.Now()
	resp := &domain.SearchResponse{
		Query:         query,
		Scope:         scope,
		Target:        opts.Target,
		Results:       []domain.ResultRecord{},
		BackendStatus: map[domain.BackendType]domain.BackendReport{},
	}

	// Empty queries are answered locally; there is nothing to send to
	// a backend.
	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		resp.Success = true
		resp.QueryTimeMS = time.Since(start).Milliseconds()
		return resp, nil
	}

	// Stage 1: analyze.
	analysis := s.analyzer.Analyze(query)
	logger.Info("Query analysis: type=%s confidence=%.2f", analysis.QueryType, analysis.Confidence)
	merged := analysis.Filters.Merge(opts.Filters)
	if opts.IncludeMetadata || opts.Explain {
		resp.Analysis = &analysis
	}

	// Stage 2: select a backend.
	backend, reason, err := s.registry.Select(ctx, opts.Backend)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthRequired):
			logger.Warn("No backend available: %v", err)
			return s.failed(resp, start, domain.CategoryAuthentication,
				"no search backend is available: log in to the catalog first"), nil
		case errors.Is(err, domain.ErrNoBackend):
			logger.Warn("No applicable backend: %v", err)
			return s.failed(resp, start, domain.CategoryNotApplicable,
				"no registered backend can serve this search"), nil
		default:
			return nil, err
		}
	}
	logger.Info("Backend selected: %s (%s)", backend.Type(), reason)

	// Stage 3: invoke under a per-call timeout. Narrowing retries happen
	// inside the backend; there is no automatic cross-backend retry.
	bq := domain.BackendQuery{
		Text:    searchText(query, analysis),
		Scope:   scope,
		Target:  opts.Target,
		Filters: merged,
		Limit:   limit,
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	backendResp := backend.Search(cctx, bq)
	cancel()

	resp.BackendUsed = backend.Type()
	resp.BackendStatus[backend.Type()] = domain.BackendReport{
		Status:      backendResp.Status,
		ResultCount: len(backendResp.Results),
		QueryTimeMS: backendResp.QueryTimeMS,
		Error:       backendResp.ErrorMessage,
	}

	switch backendResp.Status {
	case domain.StatusUnavailable:
		logger.Warn("Backend %s unavailable", backend.Type())
		return s.failed(resp, start, domain.CategoryAuthentication,
			"backend "+string(backend.Type())+" has no valid session: log in to the catalog first"), nil
	case domain.StatusTimeout:
		logger.Warn("Backend %s timed out after %s", backend.Type(), s.timeout)
		return s.failed(resp, start, "", timeoutMessage(backendResp)), nil
	case domain.StatusError:
		logger.Warn("Backend %s failed: %s", backend.Type(), backendResp.ErrorMessage)
		return s.failed(resp, start, "", backendResp.ErrorMessage), nil
	}

	// Stage 4: normalise, post-filter, truncate.
	results := applyPostFilters(backendResp.Results, merged)
	logger.Debug("Post-filter: %d of %d results kept", len(results), len(backendResp.Results))
	results = truncateResults(results, limit)

	resp.Success = true
	resp.Results = buildRecords(results, opts.IncludeMetadata)
	resp.TotalResults = len(resp.Results)
	resp.QueryTimeMS = time.Since(start).Milliseconds()

	if opts.Explain {
		resp.Explanation = &domain.Explanation{
			SearchID:         searchID,
			QueryType:        analysis.QueryType,
			Confidence:       analysis.Confidence,
			BackendSelection: reason,
			IndexPattern:     backendResp.IndexPattern,
			Buckets:          merged.Buckets,
			Attempts:         backendResp.Attempts,
			ElapsedMS:        resp.QueryTimeMS,
		}
	}

	s.record(ctx, searchID, query, scope, backend.Type(), resp)
	logger.Info("Final results: %d (%dms)", resp.TotalResults, resp.QueryTimeMS)
	return resp, nil
}

// failed finalises a response as a structured failure. Category may be
// empty for backend-side errors; authentication and not-applicable
// failures always carry one.
func (s *SearchService) failed(
	resp *domain.SearchResponse, start time.Time,
	category domain.ErrorCategory, msg string,
) *domain.SearchResponse {
	resp.Success = false
	resp.Error = msg
	resp.ErrorCategory = category
	resp.QueryTimeMS = time.Since(start).Milliseconds()
	return resp
}

// record persists a best-effort history entry.
func (s *SearchService) record(
	ctx context.Context, searchID, query string,
	scope domain.Scope, backend domain.BackendType, resp *domain.SearchResponse,
) {
	if s.history == nil {
		return
	}
	rec := domain.SearchRecord{
		ID:          searchID,
		Query:       query,
		Scope:       scope,
		Backend:     backend,
		ResultCount: resp.TotalResults,
		QueryTimeMS: resp.QueryTimeMS,
		ExecutedAt:  time.Now(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		logger.Warn("Recording search history: %v", err)
	}
}

// searchText is what the backend actually queries: the extracted
// keywords when analysis found any, else the raw text. Filter phrases
// ("larger than 5 mb") never reach the backend as literal terms.
func searchText(query string, analysis domain.QueryAnalysis) string {
	if len(analysis.Keywords) > 0 {
		return strings.Join(analysis.Keywords, " ")
	}
	return strings.TrimSpace(query)
}

// buildRecords converts canonical results into serialisable records.
// A result that lost its name upstream violates the normalisation
// contract and is dropped rather than propagated.
func buildRecords(results []domain.SearchResult, includeMetadata bool) []domain.ResultRecord {
	records := make([]domain.ResultRecord, 0, len(results))
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		rec := domain.ResultRecord{
			Name:      r.Name,
			Type:      r.Type,
			Bucket:    r.Bucket,
			Size:      r.Size,
			Extension: r.Extension,
			Score:     r.Score,
			Backend:   r.Backend,
		}
		if includeMetadata {
			rec.Metadata = r.Metadata
		}
		records = append(records, rec)
	}
	return records
}

func timeoutMessage(resp domain.BackendResponse) string {
	if resp.ErrorMessage != "" {
		return resp.ErrorMessage
	}
	return domain.ErrBackendTimeout.Error()
}
