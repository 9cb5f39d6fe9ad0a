package file

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyCatalogURL, "https://catalog.example.com"))

	val, ok := store.Get(KeyCatalogURL)
	assert.True(t, ok)
	assert.Equal(t, "https://catalog.example.com", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDefaultScope, "file"))

	assert.Equal(t, "file", store.GetString(KeyDefaultScope))
	assert.Equal(t, "", store.GetString("nonexistent"))

	require.NoError(t, store.Set(KeyDefaultLimit, 42))
	assert.Equal(t, "", store.GetString(KeyDefaultLimit), "wrong type reads as empty")
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDefaultLimit, 25))
	assert.Equal(t, 25, store.GetInt(KeyDefaultLimit))

	// TOML round-trips integers as int64
	store.mu.Lock()
	store.data[KeyTimeoutSeconds] = int64(45)
	store.mu.Unlock()
	assert.Equal(t, 45, store.GetInt(KeyTimeoutSeconds))

	assert.Equal(t, 0, store.GetInt("nonexistent"))
	require.NoError(t, store.Set(KeyDefaultScope, "global"))
	assert.Equal(t, 0, store.GetInt(KeyDefaultScope), "wrong type reads as zero")
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyHistoryEnabled, true))
	assert.True(t, store.GetBool(KeyHistoryEnabled))

	require.NoError(t, store.Set(KeyHistoryEnabled, false))
	assert.False(t, store.GetBool(KeyHistoryEnabled))

	assert.False(t, store.GetBool("nonexistent"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set(KeyCatalogURL, "https://catalog.example.com"))
	require.NoError(t, store1.Set(KeyDefaultLimit, 25))
	require.NoError(t, store1.Set(KeyHistoryEnabled, true))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://catalog.example.com", store2.GetString(KeyCatalogURL))
	assert.Equal(t, 25, store2.GetInt(KeyDefaultLimit))
	assert.True(t, store2.GetBool(KeyHistoryEnabled))
}

func TestConfigStore_SavesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyCatalogURL, "https://catalog.example.com"))
	require.NoError(t, store.Set(KeyDefaultLimit, 25))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var onDisk map[string]any
	require.NoError(t, toml.Unmarshal(raw, &onDisk))

	catalog, ok := onDisk["catalog"].(map[string]any)
	require.True(t, ok, "catalog keys should nest into a [catalog] table")
	assert.Equal(t, "https://catalog.example.com", catalog["url"])
	_, flat := onDisk["catalog.url"]
	assert.False(t, flat, "no literal dotted key at the top level")
}

func TestConfigStore_LoadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[catalog]\nurl = \"https://catalog.example.com\"\n\n[search]\ndefault_limit = 30\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://catalog.example.com", store.GetString(KeyCatalogURL))
	assert.Equal(t, 30, store.GetInt(KeyDefaultLimit))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyCatalogURL, "x"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDefaultScope, "file"))
	require.NoError(t, store.Set(KeyDefaultScope, "global"))

	assert.Equal(t, "global", store.GetString(KeyDefaultScope))
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# comment only\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get(KeyCatalogURL)
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := fmt.Sprintf("search.worker_%d", id)
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
