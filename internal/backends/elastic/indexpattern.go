package elastic

import (
	"fmt"
	"strings"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// PackageIndexSuffix distinguishes a bucket's package index from its
// file index. A bucket named "alpha" is indexed as "alpha" for files
// and "alpha_packages" for package manifests.
const PackageIndexSuffix = "_packages"

// BuildIndexPattern maps a search scope and bucket set onto the
// comma-separated index list the document service expects. An empty
// bucket set produces an empty pattern, which callers treat as
// "nothing to search" rather than an error.
func BuildIndexPattern(scope domain.Scope, buckets []string) (string, error) {
	if len(buckets) == 0 {
		return "", nil
	}

	switch scope {
	case domain.ScopeFile:
		return strings.Join(buckets, ","), nil
	case domain.ScopePackage, domain.ScopePackageEntry:
		indices := make([]string, len(buckets))
		for i, b := range buckets {
			indices[i] = b + PackageIndexSuffix
		}
		return strings.Join(indices, ","), nil
	case domain.ScopeGlobal:
		indices := make([]string, 0, len(buckets)*2)
		for _, b := range buckets {
			indices = append(indices, b, b+PackageIndexSuffix)
		}
		return strings.Join(indices, ","), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidScope, scope)
	}
}

// classifyIndexName reports which scope's documents an index holds,
// keyed off the package suffix. Global searches use this to pick a
// normaliser for each hit's originating index.
func classifyIndexName(index string) domain.Scope {
	if strings.HasSuffix(index, PackageIndexSuffix) {
		return domain.ScopePackageEntry
	}
	return domain.ScopeFile
}

// bucketFromIndex recovers the bucket name from an index name by
// stripping the package suffix when present.
func bucketFromIndex(index string) string {
	return strings.TrimSuffix(index, PackageIndexSuffix)
}

// removeBucket returns buckets without the named entry. The slice is
// copied so narrowing never mutates a caller's bucket list.
func removeBucket(buckets []string, name string) []string {
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		if b != name {
			out = append(out, b)
		}
	}
	return out
}
