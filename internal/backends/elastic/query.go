package elastic

import (
	"strings"
	"time"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// searchRequest is the body posted to the catalog's search proxy. The
// proxy forwards Query to the document service against Index.
type searchRequest struct {
	Index string    `json:"index"`
	Query boolQuery `json:"query"`
	Limit int       `json:"limit"`
}

type boolQuery struct {
	Bool boolClauses `json:"bool"`
}

type boolClauses struct {
	Must   []queryClause `json:"must"`
	Filter []queryClause `json:"filter,omitempty"`
}

// queryClause is a single DSL clause. Exactly one field is set.
type queryClause struct {
	QueryString *queryStringClause     `json:"query_string,omitempty"`
	MatchAll    *matchAllClause        `json:"match_all,omitempty"`
	Terms       map[string][]string    `json:"terms,omitempty"`
	Range       map[string]rangeBounds `json:"range,omitempty"`
}

type queryStringClause struct {
	Query string `json:"query"`
}

type matchAllClause struct{}

type rangeBounds struct {
	GTE any `json:"gte,omitempty"`
	LTE any `json:"lte,omitempty"`
}

// buildQuery assembles the DSL for one search attempt. Structured
// filters ride in the filter context so they never affect scoring.
func buildQuery(text string, filters domain.Filters) boolQuery {
	var must []queryClause
	if strings.TrimSpace(text) == "" {
		must = append(must, queryClause{MatchAll: &matchAllClause{}})
	} else {
		must = append(must, queryClause{QueryString: &queryStringClause{
			Query: escapeQueryString(text),
		}})
	}

	var filter []queryClause
	if len(filters.Extensions) > 0 {
		exts := make([]string, len(filters.Extensions))
		for i, ext := range filters.Extensions {
			exts[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
		}
		filter = append(filter, queryClause{Terms: map[string][]string{"ext": exts}})
	}
	if filters.SizeMin != nil || filters.SizeMax != nil {
		bounds := rangeBounds{}
		if filters.SizeMin != nil {
			bounds.GTE = *filters.SizeMin
		}
		if filters.SizeMax != nil {
			bounds.LTE = *filters.SizeMax
		}
		filter = append(filter, queryClause{Range: map[string]rangeBounds{"size": bounds}})
	}
	if filters.CreatedAfter != nil || filters.CreatedBefore != nil {
		bounds := rangeBounds{}
		if filters.CreatedAfter != nil {
			bounds.GTE = filters.CreatedAfter.Format(time.RFC3339)
		}
		if filters.CreatedBefore != nil {
			bounds.LTE = filters.CreatedBefore.Format(time.RFC3339)
		}
		filter = append(filter, queryClause{Range: map[string]rangeBounds{"last_modified": bounds}})
	}

	return boolQuery{Bool: boolClauses{Must: must, Filter: filter}}
}

// queryEscaper neutralises DSL operators in user text. Wildcards are
// left alone so "report*" keeps its prefix-match meaning.
var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`/`, `\/`,
	`-`, `\-`,
	`:`, `\:`,
	`+`, `\+`,
	`(`, `\(`,
	`)`, `\)`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
	`"`, `\"`,
)

func escapeQueryString(text string) string {
	return queryEscaper.Replace(text)
}
