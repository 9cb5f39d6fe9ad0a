// Package cli implements the lakesearch command line interface using
// cobra. Commands talk to the core services through the driving ports;
// main wires the concrete services in via Wire before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/driftline-labs/lakesearch/internal/adapters/driven/session"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driven"
	"github.com/driftline-labs/lakesearch/internal/core/ports/driving"
	"github.com/driftline-labs/lakesearch/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// Services the commands depend on. Set once by Wire at startup;
// tests swap in mocks directly.
var (
	searchService  driving.SearchService
	backendService driving.BackendService
	historyService driving.HistoryService
	configStore    driven.ConfigStore
	catalogSession *session.CatalogSession
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "lakesearch",
	Short: "Search a data catalog from the command line",
	Long: `lakesearch runs federated search across a data catalog.

Each query is analysed for intent (file lookup, package lookup,
analytical constraints), routed to the most capable available backend
and returned in one uniform result shape. Filters such as extensions,
size bounds and dates can be written straight into the query text:

  lakesearch search "csv files larger than 10MB"
  lakesearch search "biolab/protein-models" --scope package
  lakesearch search "reports" --target prod-data --ext pdf --json

Run 'lakesearch login' first to store a catalog session.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose logging to stderr")
}

// Deps bundles everything the commands use.
type Deps struct {
	Search  driving.SearchService
	Backend driving.BackendService
	History driving.HistoryService
	Config  driven.ConfigStore
	Session *session.CatalogSession
}

// Wire installs the dependencies the commands call. Must run before
// Execute.
func Wire(d Deps) {
	searchService = d.Search
	backendService = d.Backend
	historyService = d.History
	configStore = d.Config
	catalogSession = d.Session
}

// SetVersion overrides the version string printed by the version
// command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
