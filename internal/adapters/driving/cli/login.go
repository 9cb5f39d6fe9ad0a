package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/driftline-labs/lakesearch/internal/adapters/driven/config/file"
	"github.com/driftline-labs/lakesearch/internal/adapters/driven/session"
)

var (
	loginCatalog    string
	loginTokenStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a catalog session token",
	Long: `Stores a bearer token for the catalog so searches can authenticate.

The token is prompted for without echo. With --token-stdin it is read
from standard input instead, which suits scripts and CI:

  lakesearch login --catalog https://catalog.example.com
  cat token.txt | lakesearch login --token-stdin

The token is written to the credentials file with owner-only
permissions. The catalog URL is remembered in the config file for
subsequent runs.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginCatalog, "catalog", "", "catalog base URL (remembered for later runs)")
	loginCmd.Flags().BoolVar(&loginTokenStdin, "token-stdin", false, "read the token from standard input")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	catalogURL := loginCatalog
	if catalogURL == "" {
		catalogURL = configStore.GetString(configfile.KeyCatalogURL)
	}
	if catalogURL == "" {
		return errors.New("no catalog URL configured; pass --catalog or set catalog.url")
	}
	if _, err := url.ParseRequestURI(catalogURL); err != nil {
		return fmt.Errorf("invalid catalog URL %q: %w", catalogURL, err)
	}

	token, err := readToken(cmd)
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("empty token")
	}

	path, err := credentialsPath()
	if err != nil {
		return err
	}

	creds := &session.Credentials{AccessToken: token, TokenType: "Bearer"}
	if err := session.SaveCredentials(path, creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	if loginCatalog != "" {
		if err := configStore.Set(configfile.KeyCatalogURL, catalogURL); err != nil {
			return fmt.Errorf("failed to save catalog URL: %w", err)
		}
	}

	if catalogSession != nil {
		catalogSession.Invalidate()
	}

	cmd.Printf("Logged in to %s\n", catalogURL)
	cmd.Printf("Credentials stored at %s\n", path)
	return nil
}

// readToken reads the bearer token, from stdin when --token-stdin is
// set, otherwise via a no-echo prompt.
func readToken(cmd *cobra.Command) (string, error) {
	if loginTokenStdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read token from stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	cmd.Print("Catalog bearer token: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	// Not a terminal (tests, pipes without --token-stdin)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// credentialsPath resolves where the token is stored: the running
// session's file when wired, the default location otherwise.
func credentialsPath() (string, error) {
	if catalogSession != nil {
		return catalogSession.CredentialsPath(), nil
	}
	return session.DefaultCredentialsPath()
}
