package elastic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

func TestBuildIndexPattern(t *testing.T) {
	tests := []struct {
		name    string
		scope   domain.Scope
		buckets []string
		want    string
	}{
		{
			name:    "file scope joins bucket names",
			scope:   domain.ScopeFile,
			buckets: []string{"b1", "b2"},
			want:    "b1,b2",
		},
		{
			name:    "package scope appends suffix",
			scope:   domain.ScopePackage,
			buckets: []string{"b1"},
			want:    "b1_packages",
		},
		{
			name:    "package entry scope appends suffix",
			scope:   domain.ScopePackageEntry,
			buckets: []string{"b1", "b2"},
			want:    "b1_packages,b2_packages",
		},
		{
			name:    "global scope unions both forms",
			scope:   domain.ScopeGlobal,
			buckets: []string{"b1", "b2"},
			want:    "b1,b1_packages,b2,b2_packages",
		},
		{
			name:    "single bucket file scope",
			scope:   domain.ScopeFile,
			buckets: []string{"data"},
			want:    "data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildIndexPattern(tt.scope, tt.buckets)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildIndexPattern_EmptyBuckets(t *testing.T) {
	got, err := BuildIndexPattern(domain.ScopeGlobal, nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildIndexPattern_UnknownScope(t *testing.T) {
	_, err := BuildIndexPattern(domain.Scope("bogus"), []string{"b1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidScope)
}

func TestClassifyIndexName(t *testing.T) {
	assert.Equal(t, domain.ScopePackageEntry, classifyIndexName("alpha_packages"))
	assert.Equal(t, domain.ScopeFile, classifyIndexName("alpha"))
}

func TestBucketFromIndex(t *testing.T) {
	assert.Equal(t, "alpha", bucketFromIndex("alpha_packages"))
	assert.Equal(t, "alpha", bucketFromIndex("alpha"))
}

func TestRemoveBucket(t *testing.T) {
	buckets := []string{"a", "b", "c"}

	got := removeBucket(buckets, "b")

	assert.Equal(t, []string{"a", "c"}, got)
	assert.Equal(t, []string{"a", "b", "c"}, buckets, "input slice must not be mutated")
}

func TestRemoveBucket_Absent(t *testing.T) {
	got := removeBucket([]string{"a", "b"}, "z")

	assert.Equal(t, []string{"a", "b"}, got)
}
