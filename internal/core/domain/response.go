package domain

// ErrorCategory labels a structured top-level failure so callers can
// distinguish "log in first" from "nothing can serve this".
type ErrorCategory string

const (
	// CategoryAuthentication means no backend could run for want of a
	// valid session.
	CategoryAuthentication ErrorCategory = "authentication"
	// CategoryNotApplicable means no registered backend applies to the
	// request at all.
	CategoryNotApplicable ErrorCategory = "not_applicable"
)

// ResultRecord is the serialised form of one search result.
type ResultRecord struct {
	Name      string         `json:"name"`
	Type      ResultType     `json:"type"`
	Bucket    string         `json:"bucket"`
	Size      int64          `json:"size"`
	Extension string         `json:"extension"`
	Score     float64        `json:"score"`
	Backend   BackendType    `json:"backend"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// BackendReport summarises one backend's part in a search.
type BackendReport struct {
	Status      BackendStatus `json:"status"`
	ResultCount int           `json:"result_count"`
	QueryTimeMS int64         `json:"query_time_ms"`
	Error       string        `json:"error,omitempty"`
}

// Explanation carries the optional explain-mode detail: how the query
// was understood and how the search actually executed.
type Explanation struct {
	// SearchID correlates the response with log lines.
	SearchID string `json:"search_id"`

	// QueryType and Confidence echo the analysis verdict.
	QueryType  QueryType `json:"query_type"`
	Confidence float64   `json:"confidence"`

	// BackendSelection states which backend ran and why.
	BackendSelection string `json:"backend_selection"`

	// IndexPattern is the index expression the document backend queried.
	IndexPattern string `json:"index_pattern,omitempty"`

	// Buckets lists the buckets in play after narrowing.
	Buckets []string `json:"buckets,omitempty"`

	// Attempts counts backend query attempts including narrowing retries.
	Attempts int `json:"attempts,omitempty"`

	// ElapsedMS is total engine time for the search.
	ElapsedMS int64 `json:"elapsed_ms"`
}

// SearchResponse is the single response shape for every search, success
// or failure. Failures the taxonomy covers are reported structurally via
// Success, Error and ErrorCategory rather than as transport errors.
type SearchResponse struct {
	Success      bool          `json:"success"`
	Query        string        `json:"query"`
	Scope        Scope         `json:"scope"`
	Target       string        `json:"target,omitempty"`
	Results      []ResultRecord `json:"results"`
	TotalResults int           `json:"total_results"`
	QueryTimeMS  int64         `json:"query_time_ms"`

	// BackendUsed is empty when no backend ran.
	BackendUsed BackendType `json:"backend_used,omitempty"`

	// BackendStatus reports per-backend outcome for this search.
	BackendStatus map[BackendType]BackendReport `json:"backend_status"`

	// Analysis is attached when metadata is requested or explain is on.
	Analysis *QueryAnalysis `json:"analysis,omitempty"`

	// Explanation is attached in explain mode.
	Explanation *Explanation `json:"explanation,omitempty"`

	Error         string        `json:"error,omitempty"`
	ErrorCategory ErrorCategory `json:"error_category,omitempty"`
}
