package driven

// ConfigStore reads and writes persisted settings such as the catalog
// URL and search defaults. Keys are dot-separated paths into the
// backing document ("catalog.url", "search.default_limit").
type ConfigStore interface {
	// Get returns the raw value for key and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns the value for key, or "" when the key is
	// missing or not a string.
	GetString(key string) string

	// GetInt returns the value for key, or 0 when the key is missing
	// or not an integer.
	GetInt(key string) int

	// GetBool returns the value for key, or false when the key is
	// missing or not a boolean.
	GetBool(key string) bool

	// Set stores a value under key and persists it immediately.
	Set(key string, value any) error

	// Load reads the persisted settings into memory, replacing any
	// unsaved state.
	Load() error

	// Path returns the location of the backing file.
	Path() string
}
