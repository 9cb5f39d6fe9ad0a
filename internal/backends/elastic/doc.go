// Package elastic implements the document-search backend against the
// catalog's full-text index service.
//
// The backing store partitions data per bucket: a bucket's object index
// uses the bucket name itself, and its package index appends a fixed
// suffix. Scope resolution therefore happens here, by building an index
// pattern from the requested scope and the session's accessible buckets.
//
// Multi-index queries can fail with an authorization error when the
// pattern includes an index the session cannot read. The backend narrows
// the pattern one bucket at a time and retries up to a fixed bound,
// preferring a best-effort answer across accessible buckets over total
// failure.
package elastic
