package cli

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

var (
	backendsCheck   bool
	backendsRefresh bool
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Show search backend status",
	Long: `Shows the last-known status of every registered search backend.

With --check each backend is probed over the network before reporting.
--refresh additionally discards the cached bucket list, so the next
search sees newly granted buckets immediately.`,
	RunE: runBackends,
}

func init() {
	backendsCmd.Flags().BoolVar(&backendsCheck, "check", false, "probe each backend before reporting")
	backendsCmd.Flags().BoolVar(&backendsRefresh, "refresh", false, "discard cached session state, then probe")
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, _ []string) error {
	if backendService == nil {
		return errors.New("backend service not configured")
	}

	ctx := cmd.Context()

	if catalogSession != nil {
		if catalogSession.IsAvailable(ctx) {
			cmd.Printf("Session: %s (%s)\n", styleOK.Render("active"), catalogSession.CatalogBase())
		} else {
			cmd.Printf("Session: %s\n", styleMuted.Render("not logged in"))
		}
	}

	if backendsRefresh && catalogSession != nil && catalogSession.IsAvailable(ctx) {
		if _, err := catalogSession.ListBuckets(ctx, true); err != nil {
			cmd.Printf("Warning: bucket refresh failed: %v\n", err)
		}
	}

	var statuses map[domain.BackendType]domain.BackendStatus
	if backendsCheck || backendsRefresh {
		statuses = backendService.CheckAll(ctx)
	} else {
		statuses = backendService.Statuses()
	}

	if len(statuses) == 0 {
		cmd.Println("No backends registered.")
		return nil
	}

	cmd.Println()
	for _, bt := range sortedBackendTypes(statuses) {
		cmd.Printf("  %-18s %s\n", bt, statusBadge(statuses[bt]))
	}

	return nil
}

func sortedBackendTypes(statuses map[domain.BackendType]domain.BackendStatus) []domain.BackendType {
	types := make([]domain.BackendType, 0, len(statuses))
	for bt := range statuses {
		types = append(types, bt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
