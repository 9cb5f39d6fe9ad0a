// Package session implements the catalog session the backends depend
// on: token storage in a TOML credentials file, validity checks,
// authentication headers, and the TTL-cached accessible-bucket
// enumeration. A filesystem watcher invalidates the in-memory token
// when another process rewrites the credentials file.
package session
