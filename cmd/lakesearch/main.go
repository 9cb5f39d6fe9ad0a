// Package main is the entry point for the lakesearch CLI.
package main

import (
	"fmt"
	"os"
	"time"

	configfile "github.com/driftline-labs/lakesearch/internal/adapters/driven/config/file"
	historysqlite "github.com/driftline-labs/lakesearch/internal/adapters/driven/history/sqlite"
	"github.com/driftline-labs/lakesearch/internal/adapters/driven/session"
	"github.com/driftline-labs/lakesearch/internal/adapters/driving/cli"
	"github.com/driftline-labs/lakesearch/internal/backends/catalog"
	"github.com/driftline-labs/lakesearch/internal/backends/elastic"
	"github.com/driftline-labs/lakesearch/internal/core/services"
	"github.com/driftline-labs/lakesearch/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run is the composition root: driven adapters first, then the core
// services, then the CLI on top.
func run() error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	credsPath, err := session.DefaultCredentialsPath()
	if err != nil {
		return err
	}

	// The catalog URL may be unset before the first login; backends then
	// report unavailable and searches fail with a log-in-first message.
	sess := session.New(cfg.GetString(configfile.KeyCatalogURL), credsPath)
	defer sess.Close()
	if secs := cfg.GetInt(configfile.KeyBucketTTLSeconds); secs > 0 {
		sess.SetBucketTTL(time.Duration(secs) * time.Second)
	}

	docSearch := elastic.New(sess)
	if endpoint := cfg.GetString(configfile.KeySearchEndpoint); endpoint != "" {
		docSearch.SetSearchEndpoint(endpoint)
	}

	registry := services.NewBackendRegistry(0)
	registry.Register(docSearch)
	registry.Register(catalog.New(sess))

	search := services.NewSearchService(services.NewAnalyzer(cfg.GetInt(configfile.KeyAnalyzerCache)), registry)
	if secs := cfg.GetInt(configfile.KeyTimeoutSeconds); secs > 0 {
		search.SetTimeout(time.Duration(secs) * time.Second)
	}

	deps := cli.Deps{
		Search:  search,
		Backend: registry,
		Config:  cfg,
		Session: sess,
	}

	if historyEnabled(cfg) {
		store, err := historysqlite.NewStore(cfg.GetString(configfile.KeyHistoryPath))
		if err != nil {
			logger.Warn("Search history disabled: %v", err)
		} else {
			defer store.Close()
			search.SetHistoryStore(store)
			deps.History = services.NewHistoryService(store)
		}
	}

	cli.Wire(deps)
	cli.SetVersion(version)
	return cli.Execute()
}

// historyEnabled defaults to on; only an explicit history.enabled=false
// turns recording off.
func historyEnabled(cfg *configfile.ConfigStore) bool {
	if v, ok := cfg.Get(configfile.KeyHistoryEnabled); ok {
		if b, isBool := v.(bool); isBool {
			return b
		}
	}
	return true
}
