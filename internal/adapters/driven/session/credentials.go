package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/oauth2"
)

const (
	credentialsDirMode  = 0700
	credentialsFileMode = 0600
)

// Credentials is the persisted catalog token, stored as TOML with
// owner-only permissions.
type Credentials struct {
	AccessToken  string    `toml:"access_token"`
	RefreshToken string    `toml:"refresh_token,omitempty"`
	TokenType    string    `toml:"token_type,omitempty"`
	Expiry       time.Time `toml:"expiry,omitempty"`
}

// Token converts to the oauth2 form used for validity checks. Returns
// nil when no access token is stored.
func (c *Credentials) Token() *oauth2.Token {
	if c == nil || c.AccessToken == "" {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
		Expiry:       c.Expiry,
	}
}

// CredentialsFromToken builds the persistable form of a token.
func CredentialsFromToken(t *oauth2.Token) *Credentials {
	return &Credentials{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

// DefaultCredentialsPath is ~/.lakesearch/credentials.toml.
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".lakesearch", "credentials.toml"), nil
}

// LoadCredentials reads and parses the credentials file. A missing
// file surfaces as os.ErrNotExist so callers can treat it as "not
// logged in" rather than a failure.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var creds Credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials file: %w", err)
	}
	return &creds, nil
}

// SaveCredentials writes the credentials file with restricted
// permissions, creating the directory if needed.
func SaveCredentials(path string, creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), credentialsDirMode); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}
	data, err := toml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := os.WriteFile(path, data, credentialsFileMode); err != nil {
		return fmt.Errorf("writing credentials file: %w", err)
	}
	return nil
}

// RemoveCredentials deletes the credentials file. Already absent is
// not an error.
func RemoveCredentials(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credentials file: %w", err)
	}
	return nil
}
