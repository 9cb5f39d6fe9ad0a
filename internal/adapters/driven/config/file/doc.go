// Package file provides the file-based configuration adapter.
// Settings live in a TOML file under the lakesearch config directory,
// nested into sections on disk and exposed as dot-notation keys.
package file
