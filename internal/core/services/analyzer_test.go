package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// TestAnalyzer_ExtensionQueries tests extension signal detection
func TestAnalyzer_ExtensionQueries(t *testing.T) {
	analyzer := NewAnalyzer(0)

	tests := []struct {
		name       string
		query      string
		extensions []string
	}{
		{
			name:       "bare extension word",
			query:      "csv files",
			extensions: []string{"csv"},
		},
		{
			name:       "wildcard token",
			query:      "*.parquet in the lake",
			extensions: []string{"parquet"},
		},
		{
			name:       "dot token",
			query:      ".json configs",
			extensions: []string{"json"},
		},
		{
			name:       "mixed tokens deduplicate",
			query:      "csv *.csv",
			extensions: []string{"csv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := analyzer.Analyze(tt.query)
			assert.Equal(t, domain.QueryFileSearch, analysis.QueryType)
			assert.Equal(t, tt.extensions, analysis.Filters.Extensions)
		})
	}
}

// TestAnalyzer_CSVKeyword tests that a bare extension word survives as a keyword
func TestAnalyzer_CSVKeyword(t *testing.T) {
	analyzer := NewAnalyzer(0)

	analysis := analyzer.Analyze("csv files")

	assert.Equal(t, domain.QueryFileSearch, analysis.QueryType)
	assert.Contains(t, analysis.Keywords, "csv")
	assert.Contains(t, analysis.Filters.Extensions, "csv")
}

// TestAnalyzer_EmptyInput tests that empty input never panics and scores zero
func TestAnalyzer_EmptyInput(t *testing.T) {
	analyzer := NewAnalyzer(0)

	for _, query := range []string{"", "   ", "\t\n  "} {
		analysis := analyzer.Analyze(query)
		assert.Equal(t, domain.QueryNaturalLanguage, analysis.QueryType)
		assert.Equal(t, 0.0, analysis.Confidence)
		assert.NotNil(t, analysis.Keywords)
		assert.True(t, analysis.Filters.IsZero())
	}
}

// TestAnalyzer_SizePhrases tests size extraction with 1024-based units
func TestAnalyzer_SizePhrases(t *testing.T) {
	analyzer := NewAnalyzer(0)

	tests := []struct {
		name    string
		query   string
		sizeMin *int64
		sizeMax *int64
	}{
		{
			name:    "bytes lower bound",
			query:   "find csv files larger than 5 bytes",
			sizeMin: ptr(int64(5)),
		},
		{
			name:    "megabytes lower bound",
			query:   "objects larger than 2 MB",
			sizeMin: ptr(int64(2 * 1024 * 1024)),
		},
		{
			name:    "fractional gigabytes",
			query:   "over 1.5 gb",
			sizeMin: ptr(int64(1.5 * 1024 * 1024 * 1024)),
		},
		{
			name:    "upper bound",
			query:   "smaller than 10 kb",
			sizeMax: ptr(int64(10 * 1024)),
		},
		{
			name:    "both bounds",
			query:   "larger than 1 kb smaller than 1 mb",
			sizeMin: ptr(int64(1024)),
			sizeMax: ptr(int64(1024 * 1024)),
		},
		{
			name:    "unitless defaults to bytes",
			query:   "more than 100",
			sizeMin: ptr(int64(100)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := analyzer.Analyze(tt.query)
			if tt.sizeMin != nil {
				require.NotNil(t, analysis.Filters.SizeMin)
				assert.Equal(t, *tt.sizeMin, *analysis.Filters.SizeMin)
			} else {
				assert.Nil(t, analysis.Filters.SizeMin)
			}
			if tt.sizeMax != nil {
				require.NotNil(t, analysis.Filters.SizeMax)
				assert.Equal(t, *tt.sizeMax, *analysis.Filters.SizeMax)
			} else {
				assert.Nil(t, analysis.Filters.SizeMax)
			}
		})
	}
}

// TestAnalyzer_SizeWithoutExtensionIsAnalytical tests classification priority
func TestAnalyzer_SizeWithoutExtensionIsAnalytical(t *testing.T) {
	analyzer := NewAnalyzer(0)

	analysis := analyzer.Analyze("objects larger than 100 mb")

	assert.Equal(t, domain.QueryAnalytical, analysis.QueryType)
}

// TestAnalyzer_DatePhrases tests absolute date extraction
func TestAnalyzer_DatePhrases(t *testing.T) {
	analyzer := NewAnalyzer(0)

	analysis := analyzer.Analyze("reports since 2024-01-15 before 2024-06-30")

	require.NotNil(t, analysis.Filters.CreatedAfter)
	require.NotNil(t, analysis.Filters.CreatedBefore)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *analysis.Filters.CreatedAfter)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *analysis.Filters.CreatedBefore)
	assert.Equal(t, domain.QueryAnalytical, analysis.QueryType)
}

// TestAnalyzer_RelativeDates tests clock-relative phrases
func TestAnalyzer_RelativeDates(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	analyzer := NewAnalyzer(0)
	analyzer.now = func() time.Time { return fixed }

	tests := []struct {
		query    string
		expected time.Time
	}{
		{"uploaded last week", fixed.AddDate(0, 0, -7)},
		{"changed in the past month", fixed.AddDate(0, -1, 0)},
		{"modified last year", fixed.AddDate(-1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			analysis := analyzer.Analyze(tt.query)
			require.NotNil(t, analysis.Filters.CreatedAfter)
			assert.Equal(t, tt.expected, *analysis.Filters.CreatedAfter)
		})
	}
}

// TestAnalyzer_RelativeDatesNotCached tests that clock-relative analyses
// track the clock instead of the cache
func TestAnalyzer_RelativeDatesNotCached(t *testing.T) {
	current := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	analyzer := NewAnalyzer(0)
	analyzer.now = func() time.Time { return current }

	first := analyzer.Analyze("uploaded last week")
	require.NotNil(t, first.Filters.CreatedAfter)

	current = current.AddDate(0, 0, 10)
	second := analyzer.Analyze("uploaded last week")
	require.NotNil(t, second.Filters.CreatedAfter)

	assert.NotEqual(t, *first.Filters.CreatedAfter, *second.Filters.CreatedAfter)
}

// TestAnalyzer_PackageIdentifier tests namespace/name detection
func TestAnalyzer_PackageIdentifier(t *testing.T) {
	analyzer := NewAnalyzer(0)

	tests := []struct {
		name     string
		query    string
		expected domain.QueryType
	}{
		{
			name:     "bare identifier",
			query:    "genomics/hg38-alignments",
			expected: domain.QueryPackageSearch,
		},
		{
			name:     "identifier in sentence",
			query:    "show team/quarterly-reports",
			expected: domain.QueryPackageSearch,
		},
		{
			name:     "extension outranks package token",
			query:    "team/quarterly-reports csv",
			expected: domain.QueryFileSearch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := analyzer.Analyze(tt.query)
			assert.Equal(t, tt.expected, analysis.QueryType)
		})
	}
}

// TestAnalyzer_NaturalLanguageFallback tests signal-free queries
func TestAnalyzer_NaturalLanguageFallback(t *testing.T) {
	analyzer := NewAnalyzer(0)

	analysis := analyzer.Analyze("where did the experiment results go")

	assert.Equal(t, domain.QueryNaturalLanguage, analysis.QueryType)
	assert.Equal(t, 0.5, analysis.Confidence)
	assert.True(t, analysis.Filters.IsZero())
}

// TestAnalyzer_ConfidenceBounds tests clamping across signal counts
func TestAnalyzer_ConfidenceBounds(t *testing.T) {
	analyzer := NewAnalyzer(0)

	queries := []string{
		"csv",
		"csv larger than 5 mb",
		"csv larger than 5 mb since 2024-01-01",
		"team/data csv larger than 5 mb since 2024-01-01",
	}

	for _, query := range queries {
		analysis := analyzer.Analyze(query)
		assert.GreaterOrEqual(t, analysis.Confidence, 0.0, "query %q", query)
		assert.LessOrEqual(t, analysis.Confidence, 1.0, "query %q", query)
	}
}

// TestAnalyzer_KeywordStripping tests filler and phrase removal
func TestAnalyzer_KeywordStripping(t *testing.T) {
	analyzer := NewAnalyzer(0)

	analysis := analyzer.Analyze("find all the sales reports larger than 2 mb")

	assert.NotContains(t, analysis.Keywords, "find")
	assert.NotContains(t, analysis.Keywords, "all")
	assert.NotContains(t, analysis.Keywords, "the")
	assert.NotContains(t, analysis.Keywords, "larger")
	assert.NotContains(t, analysis.Keywords, "2")
	assert.Contains(t, analysis.Keywords, "sales")
	assert.Contains(t, analysis.Keywords, "reports")
}

// TestAnalyzer_Deterministic tests repeat analysis stability
func TestAnalyzer_Deterministic(t *testing.T) {
	analyzer := NewAnalyzer(0)

	first := analyzer.Analyze("Parquet files larger than 10 MB since 2024-02-01")
	second := analyzer.Analyze("parquet files larger than  10 mb since 2024-02-01")

	assert.Equal(t, first, second)
}

func ptr[T any](v T) *T {
	return &v
}
