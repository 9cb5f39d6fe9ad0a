package elastic

import (
	"errors"
	"fmt"
	"regexp"
)

// QueryError represents a document-service failure. The message is the
// service's own wording, preserved verbatim for the caller.
type QueryError struct {
	StatusCode int
	Message    string
	Index      string
}

func (e *QueryError) Error() string {
	if e.Index != "" {
		return fmt.Sprintf("elastic: query failed (%d) on %s: %s", e.StatusCode, e.Index, e.Message)
	}
	return fmt.Sprintf("elastic: query failed (%d): %s", e.StatusCode, e.Message)
}

// AuthorizationError marks the partial-authorization case: the query
// pattern includes at least one index the session cannot read. It is
// recovered locally by narrowing, up to a bound.
type AuthorizationError struct {
	StatusCode int
	Message    string
	Index      string
}

func (e *AuthorizationError) Error() string {
	if e.Index != "" {
		return fmt.Sprintf("elastic: not authorized for index %s: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("elastic: not authorized: %s", e.Message)
}

// IsAuthorization checks if the error is a narrowable authorization failure.
func IsAuthorization(err error) bool {
	var authErr *AuthorizationError
	return errors.As(err, &authErr)
}

// IsQueryError checks if the error is a backend-side query failure.
func IsQueryError(err error) bool {
	var queryErr *QueryError
	return errors.As(err, &queryErr)
}

// offendingIndexPattern extracts the index the service names in an
// authorization message, e.g. "... is unauthorized for index [alpha]".
var offendingIndexPattern = regexp.MustCompile(`ind(?:ex|ices) \[([^\],]+)`)

// parseOffendingIndex pulls the denied index name out of an error
// message. Returns empty when the service did not name one.
func parseOffendingIndex(message string) string {
	m := offendingIndexPattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	return m[1]
}
