package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	configfile "github.com/driftline-labs/lakesearch/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change lakesearch configuration.

Keys use dotted paths that map onto TOML tables, so "catalog.url"
lives under [catalog] in the config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  `Sets a configuration value and saves the file. Integers and booleans are stored typed; everything else is stored as a string.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

// knownConfigKeys drives the show command's ordering.
var knownConfigKeys = []string{
	configfile.KeyCatalogURL,
	configfile.KeySearchEndpoint,
	configfile.KeyBucketTTLSeconds,
	configfile.KeyDefaultLimit,
	configfile.KeyTimeoutSeconds,
	configfile.KeyDefaultScope,
	configfile.KeyDefaultBackend,
	configfile.KeyAnalyzerCache,
	configfile.KeyHistoryEnabled,
	configfile.KeyHistoryPath,
	configfile.KeyMCPPort,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Configuration:")
	cmd.Println()
	for _, key := range knownConfigKeys {
		if value, ok := configStore.Get(key); ok {
			cmd.Printf("  %-28s %v\n", key, value)
		} else {
			cmd.Printf("  %-28s %s\n", key, styleMuted.Render("(not set)"))
		}
	}
	cmd.Println()
	cmd.Printf("File: %s\n", configStore.Path())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key not set: %s", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, coerceConfigValue(raw)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, raw)
	return nil
}

// coerceConfigValue stores integers and booleans typed so GetInt and
// GetBool round-trip without string parsing.
func coerceConfigValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
