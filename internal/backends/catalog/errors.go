package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a failure reported by the catalog endpoint, at
// the HTTP layer or inside a GraphQL errors array. Message keeps the
// service's own wording.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("catalog: %d %s: %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("catalog: %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized checks if the error is an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden checks if the error is an authorization failure.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// joinGraphQLMessages flattens a GraphQL errors array into one line.
func joinGraphQLMessages(errs []graphqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	if len(msgs) == 0 {
		return "query rejected"
	}
	return strings.Join(msgs, "; ")
}
