package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	configfile "github.com/driftline-labs/lakesearch/internal/adapters/driven/config/file"
	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

var (
	searchScope    string
	searchTarget   string
	searchBackend  string
	searchLimit    int
	searchExts     []string
	searchBuckets  []string
	searchMetadata bool
	searchExplain  bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Runs one federated search across the catalog.

The query text is analysed for intent and constraints, so filters can
be written in plain language or passed as flags. Flags win over
anything extracted from the text.

Scopes:
  file          loose objects in buckets
  package       package revisions
  packageEntry  entries inside packages
  global        objects and package entries together (default)

Examples:
  lakesearch search "csv files larger than 10MB"
  lakesearch search "protein models" --scope package
  lakesearch search "reports" --target prod-data --ext pdf --ext docx
  lakesearch search "genomes" --backend catalog_query --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchScope, "scope", "s", "", "search scope: file, package, packageEntry or global")
	searchCmd.Flags().StringVarP(&searchTarget, "target", "t", "", "restrict the search to one bucket")
	searchCmd.Flags().StringVarP(&searchBackend, "backend", "b", domain.BackendAuto, "backend to use: auto, document_search or catalog_query")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = default)")
	searchCmd.Flags().StringSliceVar(&searchExts, "ext", nil, "filter by file extension (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchBuckets, "bucket", nil, "filter by bucket (repeatable)")
	searchCmd.Flags().BoolVar(&searchMetadata, "metadata", false, "include backend metadata with each result")
	searchCmd.Flags().BoolVar(&searchExplain, "explain", false, "include query analysis and execution detail")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the full response as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	scopeArg := searchScope
	if scopeArg == "" && configStore != nil {
		scopeArg = configStore.GetString(configfile.KeyDefaultScope)
	}
	scope, err := domain.ParseScope(scopeArg)
	if err != nil {
		return err
	}

	limit := searchLimit
	if limit == 0 && configStore != nil {
		limit = configStore.GetInt(configfile.KeyDefaultLimit)
	}

	backend := searchBackend
	if !cmd.Flags().Changed("backend") && configStore != nil {
		if b := configStore.GetString(configfile.KeyDefaultBackend); b != "" {
			backend = b
		}
	}

	opts := domain.SearchOptions{
		Scope:           scope,
		Target:          searchTarget,
		Backend:         backend,
		Limit:           limit,
		IncludeMetadata: searchMetadata,
		Explain:         searchExplain,
		Filters: domain.Filters{
			Extensions: searchExts,
			Buckets:    searchBuckets,
		},
	}

	resp, err := searchService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}
	return outputSearchText(cmd, resp)
}

func outputSearchJSON(cmd *cobra.Command, resp *domain.SearchResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, resp *domain.SearchResponse) error {
	if !resp.Success {
		cmd.Printf("%s %s\n", styleError.Render("Search failed:"), resp.Error)
		switch resp.ErrorCategory {
		case domain.CategoryAuthentication:
			cmd.Println("Run 'lakesearch login' to store a catalog session.")
		case domain.CategoryNotApplicable:
			cmd.Println("No registered backend can serve this request.")
		}
		return nil
	}

	if resp.TotalResults == 0 {
		cmd.Println("No results found.")
	} else {
		cmd.Println()
		for i, r := range resp.Results {
			cmd.Printf("  %2d. %s %s\n", i+1, typeBadge(r.Type), styleName.Render(r.Name))
			cmd.Printf("      %s\n", styleMuted.Render(resultDetail(r)))
			if len(r.Metadata) > 0 {
				for _, k := range sortedKeys(r.Metadata) {
					cmd.Printf("      %s\n", styleMuted.Render(fmt.Sprintf("%s: %v", k, r.Metadata[k])))
				}
			}
		}
		cmd.Println()
	}

	plural := "results"
	if resp.TotalResults == 1 {
		plural = "result"
	}
	cmd.Printf("%d %s in %dms", resp.TotalResults, plural, resp.QueryTimeMS)
	if resp.BackendUsed != "" {
		cmd.Printf(" via %s", resp.BackendUsed)
	}
	cmd.Println()

	if resp.Explanation != nil {
		outputExplanation(cmd, resp)
	}
	return nil
}

// resultDetail builds the one-line summary under each result.
func resultDetail(r domain.ResultRecord) string {
	parts := []string{"bucket: " + r.Bucket}
	if r.Size > 0 {
		parts = append(parts, "size: "+humanize.IBytes(uint64(r.Size)))
	}
	if r.Extension != "" {
		parts = append(parts, "ext: "+r.Extension)
	}
	parts = append(parts, fmt.Sprintf("score: %.2f", r.Score))
	return strings.Join(parts, "  ")
}

func outputExplanation(cmd *cobra.Command, resp *domain.SearchResponse) {
	ex := resp.Explanation

	cmd.Println()
	cmd.Println(styleHeader.Render("Explanation"))
	cmd.Printf("  Search ID:  %s\n", ex.SearchID)
	cmd.Printf("  Query type: %s (confidence %.2f)\n", ex.QueryType, ex.Confidence)
	if resp.Analysis != nil && len(resp.Analysis.Keywords) > 0 {
		cmd.Printf("  Keywords:   %s\n", strings.Join(resp.Analysis.Keywords, ", "))
	}
	cmd.Printf("  Backend:    %s\n", ex.BackendSelection)
	if ex.IndexPattern != "" {
		cmd.Printf("  Indices:    %s\n", ex.IndexPattern)
	}
	if len(ex.Buckets) > 0 {
		cmd.Printf("  Buckets:    %s\n", strings.Join(ex.Buckets, ", "))
	}
	if ex.Attempts > 1 {
		cmd.Printf("  Attempts:   %d\n", ex.Attempts)
	}
	cmd.Printf("  Elapsed:    %dms\n", ex.ElapsedMS)
}

// sortedKeys returns map keys in a stable order for display.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
