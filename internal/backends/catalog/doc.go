// Package catalog implements the package-metadata search backend.
//
// The catalog exposes a GraphQL endpoint for querying package revisions
// across buckets. Unlike the document-search backend it has no notion
// of scopes or index patterns: every query is a single structured
// package search, filtered by an explicit bucket list, fetching one
// page synchronously. It is the fallback backend when the document
// index is unreachable, and the preferred one for callers that ask for
// it explicitly.
package catalog
