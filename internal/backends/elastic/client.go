package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
)

const (
	searchPath = "/api/search"

	// defaultHTTPTimeout is a transport-level backstop. Callers bound
	// individual searches with their own context deadline.
	defaultHTTPTimeout = 60 * time.Second

	requestsPerSecond rate.Limit = 10
	requestBurst                 = 20
)

// Client talks to the catalog's search proxy, which forwards query
// bodies to the document service.
type Client struct {
	httpClient *http.Client
	session    driven.Session
	limiter    *rate.Limiter
	endpoint   string
}

// NewClient creates a search client bound to a catalog session.
func NewClient(session driven.Session) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		session:    session,
		limiter:    rate.NewLimiter(requestsPerSecond, requestBurst),
	}
}

// SetEndpoint overrides the search URL derived from the catalog base,
// for deployments where the document service is fronted separately.
// Call before the client is shared across goroutines.
func (c *Client) SetEndpoint(url string) {
	c.endpoint = strings.TrimSuffix(url, "/")
}

// esResponse mirrors the document service's search reply.
type esResponse struct {
	Took     int      `json:"took"`
	TimedOut bool     `json:"timed_out"`
	Hits     esHits   `json:"hits"`
	Error    *esError `json:"error,omitempty"`
	Status   int      `json:"status,omitempty"`
}

type esHits struct {
	Total    esTotal  `json:"total"`
	MaxScore *float64 `json:"max_score"`
	Hits     []esHit  `json:"hits"`
}

type esTotal struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation"`
}

// esHit is one matched document. Score is a pointer so a null score
// (sorted queries) survives decoding.
type esHit struct {
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Score  *float64        `json:"_score"`
	Source json.RawMessage `json:"_source"`
}

type esError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func (e *esError) message() string {
	switch {
	case e.Type != "" && e.Reason != "":
		return e.Type + ": " + e.Reason
	case e.Reason != "":
		return e.Reason
	default:
		return e.Type
	}
}

// Search runs one query attempt against the given index pattern.
func (c *Client) Search(ctx context.Context, index string, query boolQuery, limit int) (*esResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	body, err := json.Marshal(searchRequest{Index: index, Query: query, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	headers, err := c.session.AuthHeaders(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving auth headers: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp)
	}

	var result esResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if result.Error != nil {
		msg := result.Error.message()
		return nil, &QueryError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Index:      parseOffendingIndex(msg),
		}
	}
	return &result, nil
}

func (c *Client) searchURL() string {
	if c.endpoint != "" {
		return c.endpoint
	}
	return strings.TrimSuffix(c.session.CatalogBase(), "/") + searchPath
}

// statusError turns a non-2xx reply into a typed error. The service
// reports errors either as a DSL error object or as plain text.
func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	msg := strings.TrimSpace(string(raw))

	var payload struct {
		Error *esError `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != nil {
		msg = payload.Error.message()
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: catalog rejected the session", domain.ErrAuthExpired)
	case http.StatusForbidden:
		return &AuthorizationError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Index:      parseOffendingIndex(msg),
		}
	default:
		return &QueryError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Index:      parseOffendingIndex(msg),
		}
	}
}
