package elastic

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// normaliseFunc converts one raw hit into the canonical result shape.
// Returning false drops the hit without aborting the batch.
type normaliseFunc func(hit esHit, bucket string) (domain.SearchResult, bool)

// scopeHandlers is the static dispatch table from scope to normaliser.
// Global is absent on purpose: global hits are classified per index
// name and routed through this same table.
var scopeHandlers = map[domain.Scope]normaliseFunc{
	domain.ScopeFile:         normaliseFileHit,
	domain.ScopePackage:      normalisePackageHit,
	domain.ScopePackageEntry: normaliseEntryHit,
}

func handlerFor(scope domain.Scope, index string) normaliseFunc {
	if scope == domain.ScopeGlobal {
		return scopeHandlers[classifyIndexName(index)]
	}
	return scopeHandlers[scope]
}

// normaliseHits converts a batch of raw hits, dropping any the scope
// handler rejects as malformed.
func normaliseHits(scope domain.Scope, hits []esHit) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		handler := handlerFor(scope, hit.Index)
		if handler == nil {
			continue
		}
		bucket := bucketFromIndex(hit.Index)
		result, ok := handler(hit, bucket)
		if !ok {
			continue
		}
		result.ID = hit.ID
		result.Bucket = bucket
		result.Backend = domain.BackendDocumentSearch
		if hit.Score != nil {
			result.Score = *hit.Score
		}
		results = append(results, result)
	}
	return results
}

// fileSource is the indexed shape of a loose object.
type fileSource struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	Ext          string `json:"ext"`
	LastModified string `json:"last_modified"`
	VersionID    string `json:"version_id"`
}

func normaliseFileHit(hit esHit, bucket string) (domain.SearchResult, bool) {
	var src fileSource
	if err := json.Unmarshal(hit.Source, &src); err != nil || src.Key == "" {
		return domain.SearchResult{}, false
	}

	meta := map[string]any{}
	if src.VersionID != "" {
		meta["version_id"] = src.VersionID
	}
	if src.LastModified != "" {
		meta["last_modified"] = src.LastModified
	}

	return domain.SearchResult{
		Type:      domain.ResultFile,
		Name:      src.Key,
		Location:  fmt.Sprintf("s3://%s/%s", bucket, src.Key),
		Size:      src.Size,
		Extension: extensionOf(src.Ext, src.Key),
		Metadata:  meta,
	}, true
}

// packageSource is the indexed shape of a package revision.
type packageSource struct {
	Handle  string `json:"handle"`
	Pointer string `json:"pointer"`
	Hash    string `json:"hash"`
	Size    int64  `json:"size"`
}

func normalisePackageHit(hit esHit, bucket string) (domain.SearchResult, bool) {
	var src packageSource
	if err := json.Unmarshal(hit.Source, &src); err != nil || src.Handle == "" {
		return domain.SearchResult{}, false
	}

	meta := map[string]any{}
	if src.Pointer != "" {
		meta["pointer"] = src.Pointer
	}
	if src.Hash != "" {
		meta["hash"] = src.Hash
	}

	return domain.SearchResult{
		Type:     domain.ResultPackage,
		Name:     src.Handle,
		Location: fmt.Sprintf("%s/%s", bucket, src.Handle),
		Size:     src.Size,
		Metadata: meta,
	}, true
}

// entrySource is the indexed shape of a logical entry inside a package.
type entrySource struct {
	LogicalKey string `json:"logical_key"`
	Handle     string `json:"handle"`
	Size       int64  `json:"size"`
}

func normaliseEntryHit(hit esHit, bucket string) (domain.SearchResult, bool) {
	var src entrySource
	if err := json.Unmarshal(hit.Source, &src); err != nil || src.LogicalKey == "" {
		return domain.SearchResult{}, false
	}

	meta := map[string]any{}
	if src.Handle != "" {
		meta["package"] = src.Handle
	}

	location := fmt.Sprintf("%s/%s", bucket, src.LogicalKey)
	if src.Handle != "" {
		location = fmt.Sprintf("%s/%s/%s", bucket, src.Handle, src.LogicalKey)
	}

	return domain.SearchResult{
		Type:      domain.ResultPackageEntry,
		Name:      src.LogicalKey,
		Location:  location,
		Size:      src.Size,
		Extension: extensionOf("", src.LogicalKey),
		Metadata:  meta,
	}, true
}

// extensionOf prefers the indexed extension field, falling back to the
// key's own suffix. The result is dotless and lowercased.
func extensionOf(ext, key string) string {
	if ext == "" {
		ext = path.Ext(key)
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
