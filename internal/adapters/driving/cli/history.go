package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long:  `Lists recent searches, newest first. Only summaries are stored; result sets are never persisted.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No search history.")
		return nil
	}

	cmd.Println()
	for _, rec := range records {
		backend := string(rec.Backend)
		if backend == "" {
			backend = "none"
		}
		detail := fmt.Sprintf("%d results  %dms  %s  scope %s  %s",
			rec.ResultCount, rec.QueryTimeMS, backend, rec.Scope, humanize.Time(rec.ExecutedAt))

		cmd.Printf("  %s\n", styleName.Render(rec.Query))
		cmd.Printf("      %s\n", styleMuted.Render(detail))
	}

	return nil
}
