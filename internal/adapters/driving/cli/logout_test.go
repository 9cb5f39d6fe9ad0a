package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline-labs/lakesearch/internal/adapters/driven/session"
)

func TestLogoutCmd_Use(t *testing.T) {
	assert.Equal(t, "logout", logoutCmd.Use)
}

func TestLogoutCmd_RemovesCredentials(t *testing.T) {
	credsPath := setupLoginEnv(t)
	require.NoError(t, session.SaveCredentials(credsPath, &session.Credentials{
		AccessToken: "tok",
		TokenType:   "Bearer",
	}))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"logout"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Logged out.")

	_, statErr := os.Stat(credsPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestLogoutCmd_NoCredentialsFile(t *testing.T) {
	setupLoginEnv(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"logout"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Logged out.")
}
