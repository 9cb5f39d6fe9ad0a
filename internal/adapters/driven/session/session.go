package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/oauth2"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
	"github.com/driftline-labs/lakesearch/internal/logger"
)

const (
	bucketsPath = "/api/buckets"

	// DefaultBucketTTL is how long the accessible-bucket list is served
	// from cache before the catalog is asked again.
	DefaultBucketTTL = 5 * time.Minute

	requestTimeout = 30 * time.Second
)

// Ensure CatalogSession implements the interface.
var _ driven.Session = (*CatalogSession)(nil)

// CatalogSession is the file-backed catalog session. The token is read
// lazily from the credentials file and cached until invalidated; the
// bucket list is cached with a TTL and refreshed by overwrite, so
// concurrent readers never observe a partially updated value.
type CatalogSession struct {
	catalogBase     string
	credentialsPath string
	httpClient      *http.Client
	bucketTTL       time.Duration

	mu        sync.RWMutex
	token     *oauth2.Token
	loaded    bool
	buckets   []string
	bucketsAt time.Time

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates a session bound to a catalog URL and credentials file.
// A watcher on the credentials directory picks up logins and logouts
// performed by other processes; if watching fails the session still
// works, it just won't see external changes until restarted.
func New(catalogBase, credentialsPath string) *CatalogSession {
	s := &CatalogSession{
		catalogBase:     strings.TrimSuffix(catalogBase, "/"),
		credentialsPath: credentialsPath,
		httpClient:      &http.Client{Timeout: requestTimeout},
		bucketTTL:       DefaultBucketTTL,
		done:            make(chan struct{}),
	}
	s.startWatcher()
	return s
}

// SetBucketTTL overrides the bucket-cache TTL. Non-positive values are
// ignored. Call before the session is shared across goroutines.
func (s *CatalogSession) SetBucketTTL(ttl time.Duration) {
	if ttl > 0 {
		s.bucketTTL = ttl
	}
}

// IsAvailable reports whether a non-expired token is on disk. It never
// touches the network.
func (s *CatalogSession) IsAvailable(_ context.Context) bool {
	return s.currentToken().Valid()
}

// AuthHeaders returns the authorization header for outbound requests.
func (s *CatalogSession) AuthHeaders(_ context.Context) (map[string]string, error) {
	t := s.currentToken()
	switch {
	case t == nil:
		return nil, domain.ErrAuthRequired
	case !t.Valid():
		return nil, domain.ErrAuthExpired
	}
	return map[string]string{"Authorization": t.Type() + " " + t.AccessToken}, nil
}

// ListBuckets enumerates the buckets the session may read, cached for
// the configured TTL. force bypasses and refreshes the cache.
func (s *CatalogSession) ListBuckets(ctx context.Context, force bool) ([]string, error) {
	if !force {
		s.mu.RLock()
		if s.buckets != nil && time.Since(s.bucketsAt) < s.bucketTTL {
			buckets := s.buckets
			s.mu.RUnlock()
			return buckets, nil
		}
		s.mu.RUnlock()
	}

	buckets, err := s.fetchBuckets(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.buckets = buckets
	s.bucketsAt = time.Now()
	s.mu.Unlock()
	return buckets, nil
}

// CatalogBase returns the catalog's base URL.
func (s *CatalogSession) CatalogBase() string {
	return s.catalogBase
}

// CredentialsPath returns the credentials file this session reads.
// Login and logout write to the same path.
func (s *CatalogSession) CredentialsPath() string {
	return s.credentialsPath
}

// Invalidate drops the cached token and bucket list. Login and logout
// call this so the running process sees the change immediately instead
// of waiting on the file watcher.
func (s *CatalogSession) Invalidate() {
	s.mu.Lock()
	s.token = nil
	s.loaded = false
	s.buckets = nil
	s.mu.Unlock()
}

// Close stops the credentials watcher.
func (s *CatalogSession) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// currentToken returns the cached token, reading the credentials file
// on the first call after an invalidation.
func (s *CatalogSession) currentToken() *oauth2.Token {
	s.mu.RLock()
	if s.loaded {
		t := s.token
		s.mu.RUnlock()
		return t
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.token
	}

	creds, err := LoadCredentials(s.credentialsPath)
	switch {
	case err == nil:
		s.token = creds.Token()
	case errors.Is(err, os.ErrNotExist):
		s.token = nil
	default:
		logger.Warn("Loading credentials: %v", err)
		s.token = nil
	}
	s.loaded = true
	return s.token
}

func (s *CatalogSession) fetchBuckets(ctx context.Context) ([]string, error) {
	headers, err := s.AuthHeaders(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.catalogBase+bucketsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("creating bucket request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: bucket enumeration rejected", domain.ErrAuthExpired)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("listing buckets: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload struct {
		Buckets []struct {
			Name string `json:"name"`
		} `json:"buckets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding bucket response: %w", err)
	}

	names := make([]string, 0, len(payload.Buckets))
	for _, b := range payload.Buckets {
		if b.Name != "" {
			names = append(names, b.Name)
		}
	}
	return names, nil
}

// startWatcher watches the credentials directory so a login or logout
// by another process invalidates this one's cached token. The
// directory is watched rather than the file because editors and the
// login command replace the file atomically.
func (s *CatalogSession) startWatcher() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("Credentials watcher unavailable: %v", err)
		return
	}
	if err := watcher.Add(filepath.Dir(s.credentialsPath)); err != nil {
		logger.Warn("Watching credentials directory: %v", err)
		_ = watcher.Close()
		return
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.credentialsPath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					logger.Debug("Credentials file changed (%s), reloading session", event.Op)
					s.Invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Credentials watcher: %v", err)
			case <-s.done:
				return
			}
		}
	}()
}
