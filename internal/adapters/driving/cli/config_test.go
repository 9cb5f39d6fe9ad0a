package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/driftline-labs/lakesearch/internal/adapters/driven/config/file"
)

// setupConfigStore wires a real config store in a temp dir on top of
// the usual mocks.
func setupConfigStore(t *testing.T) *configfile.ConfigStore {
	t.Helper()

	cleanup := setupTestServices()
	t.Cleanup(cleanup)

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = store
	return store
}

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
}

func TestConfigCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range configCmd.Commands() {
		names[cmd.Name()] = true
	}

	assert.True(t, names["show"])
	assert.True(t, names["get"])
	assert.True(t, names["set"])
}

func TestConfigShow(t *testing.T) {
	store := setupConfigStore(t)
	require.NoError(t, store.Set(configfile.KeyCatalogURL, "https://catalog.example.com"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "catalog.url")
	assert.Contains(t, buf.String(), "https://catalog.example.com")
	assert.Contains(t, buf.String(), "(not set)")
	assert.Contains(t, buf.String(), store.Path())
}

func TestConfigSetThenGet(t *testing.T) {
	setupConfigStore(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "catalog.url", "https://catalog.example.com"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Set catalog.url = https://catalog.example.com")

	buf.Reset()
	rootCmd.SetArgs([]string{"config", "get", "catalog.url"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "https://catalog.example.com")
}

func TestConfigSet_StoresTypedValues(t *testing.T) {
	store := setupConfigStore(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "search.default_limit", "25"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, 25, store.GetInt(configfile.KeyDefaultLimit))
}

func TestConfigGet_UnsetKey(t *testing.T) {
	setupConfigStore(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "history.enabled"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "key not set: history.enabled")
}

func TestConfigCmd_StoreNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	configStore = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config store not configured")
}

func TestCoerceConfigValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{name: "integer", raw: "25", want: int64(25)},
		{name: "boolean true", raw: "true", want: true},
		{name: "boolean false", raw: "false", want: false},
		{name: "plain string", raw: "https://catalog.example.com", want: "https://catalog.example.com"},
		{name: "float stays string", raw: "12.5", want: "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceConfigValue(tt.raw))
		})
	}
}
