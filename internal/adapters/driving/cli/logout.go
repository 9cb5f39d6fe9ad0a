package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftline-labs/lakesearch/internal/adapters/driven/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored catalog session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}

	if err := session.RemoveCredentials(path); err != nil {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}

	if catalogSession != nil {
		catalogSession.Invalidate()
	}

	cmd.Println("Logged out.")
	return nil
}
