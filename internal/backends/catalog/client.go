package catalog

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

	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
)

const (
	graphqlPath = "/graphql"

	defaultHTTPTimeout = 60 * time.Second

	requestsPerSecond rate.Limit = 10
	requestBurst                 = 20
)

// searchPackagesQuery asks for one page of matching package revisions.
// A null bucket list means every bucket the caller can see.
const searchPackagesQuery = `query ($buckets: [String!], $queryString: String, $limit: Int, $cursor: String) {
  searchPackages(buckets: $buckets, queryString: $queryString, limit: $limit, cursor: $cursor) {
    total
    pageInfo { hasNextPage endCursor }
    edges { cursor node { bucket name pointer hash modified size score } }
  }
}`

// Client talks to the catalog's GraphQL endpoint.
type Client struct {
	httpClient *http.Client
	session    driven.Session
	limiter    *rate.Limiter
}

// NewClient creates a catalog query client bound to a session.
func NewClient(session driven.Session) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		session:    session,
		limiter:    rate.NewLimiter(requestsPerSecond, requestBurst),
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   *queryData     `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type queryData struct {
	SearchPackages packageConnection `json:"searchPackages"`
}

// packageConnection is one page of package search results.
type packageConnection struct {
	Total    int64         `json:"total"`
	PageInfo pageInfo      `json:"pageInfo"`
	Edges    []packageEdge `json:"edges"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type packageEdge struct {
	Cursor string      `json:"cursor"`
	Node   packageNode `json:"node"`
}

// packageNode is one package revision as the catalog reports it. Name
// is the full namespace/name handle.
type packageNode struct {
	Bucket   string  `json:"bucket"`
	Name     string  `json:"name"`
	Pointer  string  `json:"pointer"`
	Hash     string  `json:"hash"`
	Modified string  `json:"modified"`
	Size     int64   `json:"size"`
	Score    float64 `json:"score"`
}

// SearchPackages fetches one page of packages matching queryString in
// the given buckets. A nil bucket list searches every visible bucket.
func (c *Client) SearchPackages(ctx context.Context, buckets []string, queryString string, limit int, cursor string) (*packageConnection, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	variables := map[string]any{"limit": limit}
	if len(buckets) > 0 {
		variables["buckets"] = buckets
	}
	if queryString != "" {
		variables["queryString"] = queryString
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	body, err := json.Marshal(graphqlRequest{Query: searchPackagesQuery, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encoding catalog query: %w", err)
	}

	endpoint := strings.TrimSuffix(c.session.CatalogBase(), "/") + graphqlPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating catalog request: %w", err)
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
		return nil, fmt.Errorf("executing catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
			URL:        endpoint,
		}
	}

	var result graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    joinGraphQLMessages(result.Errors),
			URL:        endpoint,
		}
	}
	if result.Data == nil {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    "empty response data",
			URL:        endpoint,
		}
	}
	return &result.Data.SearchPackages, nil
}
