package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driving"
	"github.com/driftline-labs/lakesearch/internal/logger"
)

// Ensure BackendRegistry implements the driving port.
var _ driving.BackendService = (*BackendRegistry)(nil)

// DefaultHealthTTL bounds how long a probe result is trusted before the
// next selection re-checks the backend.
const DefaultHealthTTL = 5 * time.Minute

// selectionOrder is the auto-selection preference. The document index
// answers richer queries, so it wins whenever it is usable.
var selectionOrder = []domain.BackendType{
	domain.BackendDocumentSearch,
	domain.BackendCatalogQuery,
}

// BackendRegistry maps backend types to adapter instances. Adapters are
// registered eagerly but probed lazily: the first selection triggers a
// health check, and results live in a TTL cache so later selections are
// cheap. Shared across concurrent searches; the cache overwrites entries
// with fresher equivalents, so no request-level locking is needed.
type BackendRegistry struct {
	mu       sync.RWMutex
	backends map[domain.BackendType]driven.Backend
	health   *expirable.LRU[domain.BackendType, domain.BackendStatus]
}

// NewBackendRegistry creates an empty registry with the given health
// cache TTL. A non-positive TTL falls back to DefaultHealthTTL.
func NewBackendRegistry(ttl time.Duration) *BackendRegistry {
	if ttl <= 0 {
		ttl = DefaultHealthTTL
	}
	return &BackendRegistry{
		backends: make(map[domain.BackendType]driven.Backend),
		health:   expirable.NewLRU[domain.BackendType, domain.BackendStatus](8, nil, ttl),
	}
}

// Register adds a backend adapter. Registering the same type twice
// replaces the earlier adapter.
func (r *BackendRegistry) Register(b driven.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[b.Type()] = b
	logger.Debug("Registered backend: %s", b.Type())
}

// Get returns the adapter for a backend type.
func (r *BackendRegistry) Get(bt domain.BackendType) (driven.Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[bt]
	return b, ok
}

// Statuses returns the last-known status of every registered backend
// without touching the network. Cached probe results are preferred;
// otherwise the adapter's own last-known status is used.
func (r *BackendRegistry) Statuses() map[domain.BackendType]domain.BackendStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[domain.BackendType]domain.BackendStatus, len(r.backends))
	for bt, b := range r.backends {
		if status, ok := r.health.Get(bt); ok {
			out[bt] = status
			continue
		}
		out[bt] = b.Status()
	}
	return out
}

// CheckAll probes every registered backend concurrently and refreshes
// the health cache.
func (r *BackendRegistry) CheckAll(ctx context.Context) map[domain.BackendType]domain.BackendStatus {
	r.mu.RLock()
	backends := make([]driven.Backend, 0, len(r.backends))
	for _, b := range r.backends {
		backends = append(backends, b)
	}
	r.mu.RUnlock()

	var outMu sync.Mutex
	out := make(map[domain.BackendType]domain.BackendStatus, len(backends))

	g, gctx := errgroup.WithContext(ctx)
	for _, b := range backends {
		g.Go(func() error {
			status := b.HealthCheck(gctx)
			r.health.Add(b.Type(), status)
			outMu.Lock()
			out[b.Type()] = status
			outMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("Health check complete: %v", out)
	return out
}

// statusOf returns a current status for one backend, probing it when the
// cached value has expired.
func (r *BackendRegistry) statusOf(ctx context.Context, b driven.Backend) domain.BackendStatus {
	if status, ok := r.health.Get(b.Type()); ok {
		return status
	}
	status := b.HealthCheck(ctx)
	r.health.Add(b.Type(), status)
	return status
}

// Select picks the backend for a search. An explicit override names a
// backend type and is honoured whenever that backend is registered,
// regardless of health; the auto policy walks the preference order and
// picks the first available backend. When nothing can serve, the error
// is domain.ErrAuthRequired if any registered backend is unavailable
// for want of a session, else domain.ErrNoBackend.
func (r *BackendRegistry) Select(ctx context.Context, override string) (driven.Backend, string, error) {
	if override != "" && override != domain.BackendAuto {
		bt, err := domain.ParseBackendType(override)
		if err != nil {
			return nil, "", err
		}
		b, ok := r.Get(bt)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s is not registered", domain.ErrNoBackend, bt)
		}
		return b, fmt.Sprintf("explicit override: %s", bt), nil
	}

	authMarker := false
	for _, bt := range selectionOrder {
		b, ok := r.Get(bt)
		if !ok {
			continue
		}
		status := r.statusOf(ctx, b)
		logger.Debug("Backend %s status: %s", bt, status)
		if status == domain.StatusAvailable {
			return b, fmt.Sprintf("auto: %s available", bt), nil
		}
		if status == domain.StatusUnavailable {
			authMarker = true
		}
	}

	if authMarker {
		return nil, "", fmt.Errorf("selecting backend: %w", domain.ErrAuthRequired)
	}
	return nil, "", fmt.Errorf("selecting backend: %w", domain.ErrNoBackend)
}
