package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// DefaultAnalyzerCacheSize is the LRU size for cached analyses.
const DefaultAnalyzerCacheSize = 1024

// Compiled signal patterns for query analysis.
// Compiled at package init for performance.
var (
	// Extension tokens: *.csv, .csv
	extTokenPattern = regexp.MustCompile(`^\*?\.([a-zA-Z0-9]{1,8})$`)

	// Size comparisons: "larger than 5 MB", "over 100 kb", ">= 1024"
	sizeMinPattern = regexp.MustCompile(`(?i)(?:\b(?:larger than|bigger than|greater than|more than|over|above|at least)\b|>=?)\s*(\d+(?:\.\d+)?)\s*(terabytes?|gigabytes?|megabytes?|kilobytes?|bytes?|tb|gb|mb|kb|b)?\b`)
	sizeMaxPattern = regexp.MustCompile(`(?i)(?:\b(?:smaller than|less than|fewer than|under|below|at most)\b|<=?)\s*(\d+(?:\.\d+)?)\s*(terabytes?|gigabytes?|megabytes?|kilobytes?|bytes?|tb|gb|mb|kb|b)?\b`)

	// Temporal phrases: "since 2024-01-01", "before 2023-06-30", "last month"
	afterDatePattern  = regexp.MustCompile(`(?i)\b(?:since|after|newer than|from)\s+(\d{4}-\d{2}-\d{2})\b`)
	beforeDatePattern = regexp.MustCompile(`(?i)\b(?:before|until|older than)\s+(\d{4}-\d{2}-\d{2})\b`)
	relativePattern   = regexp.MustCompile(`(?i)\b(?:last|past|previous)\s+(day|week|month|year)\b`)

	// Package identifiers: namespace/name
	packagePattern = regexp.MustCompile(`^[a-zA-Z0-9][\w.-]*/[a-zA-Z0-9][\w.-]*$`)
)

// 1024-based unit multipliers for size phrases.
var sizeUnits = map[string]int64{
	"b": 1, "byte": 1, "bytes": 1,
	"kb": 1 << 10, "kilobyte": 1 << 10, "kilobytes": 1 << 10,
	"mb": 1 << 20, "megabyte": 1 << 20, "megabytes": 1 << 20,
	"gb": 1 << 30, "gigabyte": 1 << 30, "gigabytes": 1 << 30,
	"tb": 1 << 40, "terabyte": 1 << 40, "terabytes": 1 << 40,
}

// knownExtensions lets bare words like "csv" act as extension signals.
var knownExtensions = map[string]bool{
	"csv": true, "tsv": true, "json": true, "jsonl": true, "parquet": true,
	"txt": true, "md": true, "pdf": true, "xml": true, "yaml": true,
	"yml": true, "toml": true, "xlsx": true, "xls": true, "html": true,
	"png": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true,
	"gz": true, "zip": true, "tar": true, "h5": true, "hdf5": true,
	"npy": true, "npz": true, "feather": true, "orc": true, "avro": true,
	"bam": true, "sam": true, "fastq": true, "fasta": true, "vcf": true,
	"bed": true, "gff": true, "ipynb": true, "log": true,
}

// fillerWords are stripped from extracted keywords.
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "on": true,
	"for": true, "to": true, "with": true, "and": true, "or": true,
	"find": true, "show": true, "get": true, "list": true, "search": true,
	"me": true, "my": true, "all": true, "any": true, "that": true,
	"file": true, "files": true, "data": true, "datasets": true,
}

// signalCategories is how many independent signal families the analyzer
// checks: extensions, sizes, dates, package identifiers.
const signalCategories = 4

// Analyzer classifies free-text queries into a query type plus structured
// filters. It is deterministic for a fixed clock, performs no I/O, and
// never fails: malformed input degrades to a low-confidence
// natural-language analysis.
type Analyzer struct {
	cache *lru.Cache[string, domain.QueryAnalysis]
	now   func() time.Time
}

// NewAnalyzer creates an analyzer with an LRU cache of the given size.
// A non-positive size falls back to DefaultAnalyzerCacheSize.
func NewAnalyzer(cacheSize int) *Analyzer {
	if cacheSize <= 0 {
		cacheSize = DefaultAnalyzerCacheSize
	}
	cache, _ := lru.New[string, domain.QueryAnalysis](cacheSize)
	return &Analyzer{
		cache: cache,
		now:   time.Now,
	}
}

// Analyze classifies one query. Empty or whitespace-only input yields a
// zero-confidence natural-language analysis.
func (a *Analyzer) Analyze(query string) domain.QueryAnalysis {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return domain.QueryAnalysis{
			QueryType:  domain.QueryNaturalLanguage,
			Confidence: 0.0,
			Keywords:   []string{},
		}
	}

	cacheKey := strings.ToLower(strings.Join(strings.Fields(trimmed), " "))
	if cached, ok := a.cache.Get(cacheKey); ok {
		return cached
	}

	analysis, cacheable := a.analyze(cacheKey)

	// Relative date phrases resolve against the clock, so their bounds
	// go stale; keep them out of the cache.
	if cacheable {
		a.cache.Add(cacheKey, analysis)
	}
	return analysis
}

func (a *Analyzer) analyze(text string) (domain.QueryAnalysis, bool) {
	var filters domain.Filters
	matched := 0
	cacheable := true

	// Size phrases come out first so their numbers do not pollute the
	// keyword list.
	residual := text
	if m := sizeMinPattern.FindStringSubmatch(residual); m != nil {
		if n, ok := parseSizeBytes(m[1], m[2]); ok {
			filters.SizeMin = &n
		}
		residual = sizeMinPattern.ReplaceAllString(residual, " ")
	}
	if m := sizeMaxPattern.FindStringSubmatch(residual); m != nil {
		if n, ok := parseSizeBytes(m[1], m[2]); ok {
			filters.SizeMax = &n
		}
		residual = sizeMaxPattern.ReplaceAllString(residual, " ")
	}
	if filters.SizeMin != nil || filters.SizeMax != nil {
		matched++
	}

	// Temporal phrases.
	dateMatched := false
	if m := afterDatePattern.FindStringSubmatch(residual); m != nil {
		if ts, err := time.Parse("2006-01-02", m[1]); err == nil {
			filters.CreatedAfter = &ts
			dateMatched = true
		}
		residual = afterDatePattern.ReplaceAllString(residual, " ")
	}
	if m := beforeDatePattern.FindStringSubmatch(residual); m != nil {
		if ts, err := time.Parse("2006-01-02", m[1]); err == nil {
			filters.CreatedBefore = &ts
			dateMatched = true
		}
		residual = beforeDatePattern.ReplaceAllString(residual, " ")
	}
	if m := relativePattern.FindStringSubmatch(residual); m != nil {
		ts := relativeCutoff(a.now(), strings.ToLower(m[1]))
		filters.CreatedAfter = &ts
		dateMatched = true
		cacheable = false
		residual = relativePattern.ReplaceAllString(residual, " ")
	}
	if dateMatched {
		matched++
	}

	// Token-level signals: extensions and package identifiers.
	tokens := strings.Fields(residual)
	packageMatched := false
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if m := extTokenPattern.FindStringSubmatch(tok); m != nil {
			filters.Extensions = appendUnique(filters.Extensions, strings.ToLower(m[1]))
			continue
		}
		if knownExtensions[tok] {
			filters.Extensions = appendUnique(filters.Extensions, tok)
			keywords = append(keywords, tok)
			continue
		}
		if packagePattern.MatchString(tok) {
			packageMatched = true
			keywords = append(keywords, tok)
			continue
		}
		if !fillerWords[tok] {
			keywords = append(keywords, tok)
		}
	}
	if len(filters.Extensions) > 0 {
		matched++
	}
	if packageMatched {
		matched++
	}

	analysis := domain.QueryAnalysis{
		QueryType:  classify(filters, packageMatched),
		Confidence: confidence(matched),
		Keywords:   keywords,
		Filters:    filters,
	}
	return analysis, cacheable
}

// classify picks the winning query type. Extension signals outrank
// package identifiers, which outrank analytical constraints.
func classify(filters domain.Filters, packageMatched bool) domain.QueryType {
	switch {
	case len(filters.Extensions) > 0:
		return domain.QueryFileSearch
	case packageMatched:
		return domain.QueryPackageSearch
	case filters.SizeMin != nil || filters.SizeMax != nil,
		filters.CreatedAfter != nil || filters.CreatedBefore != nil:
		return domain.QueryAnalytical
	default:
		return domain.QueryNaturalLanguage
	}
}

// confidence is the matched share of checked signal categories, clamped
// to [0,1]. A signal-free query is a tie and sits at the midpoint.
func confidence(matched int) float64 {
	if matched == 0 {
		return 0.5
	}
	c := float64(matched) / float64(signalCategories)
	if c > 1.0 {
		c = 1.0
	}
	return c
}

func parseSizeBytes(num, unit string) (int64, bool) {
	value, err := strconv.ParseFloat(num, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	mult := int64(1)
	if unit != "" {
		m, ok := sizeUnits[strings.ToLower(unit)]
		if !ok {
			return 0, false
		}
		mult = m
	}
	return int64(value * float64(mult)), true
}

func relativeCutoff(now time.Time, unit string) time.Time {
	switch unit {
	case "day":
		return now.AddDate(0, 0, -1)
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	}
	return now
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
