package elastic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

func TestNormaliseHits_File(t *testing.T) {
	hit := esHit{
		Index:  "genomics",
		ID:     "doc-1",
		Score:  ptr(2.5),
		Source: json.RawMessage(`{"key":"runs/2024/sample.fastq","size":2048,"ext":".FASTQ","last_modified":"2024-03-01T10:00:00Z","version_id":"v1"}`),
	}

	results := normaliseHits(domain.ScopeFile, []esHit{hit})

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "doc-1", r.ID)
	assert.Equal(t, domain.ResultFile, r.Type)
	assert.Equal(t, "runs/2024/sample.fastq", r.Name)
	assert.Equal(t, "genomics", r.Bucket)
	assert.Equal(t, "s3://genomics/runs/2024/sample.fastq", r.Location)
	assert.Equal(t, int64(2048), r.Size)
	assert.Equal(t, "fastq", r.Extension)
	assert.Equal(t, 2.5, r.Score)
	assert.Equal(t, domain.BackendDocumentSearch, r.Backend)
	assert.Equal(t, "v1", r.Metadata["version_id"])
	assert.Equal(t, "2024-03-01T10:00:00Z", r.Metadata["last_modified"])
}

func TestNormaliseHits_FileExtensionFallsBackToKey(t *testing.T) {
	hit := esHit{
		Index:  "data",
		ID:     "doc-2",
		Source: json.RawMessage(`{"key":"a/b.CSV","size":10}`),
	}

	results := normaliseHits(domain.ScopeFile, []esHit{hit})

	require.Len(t, results, 1)
	assert.Equal(t, "csv", results[0].Extension)
}

func TestNormaliseHits_Package(t *testing.T) {
	hit := esHit{
		Index:  "proj_packages",
		ID:     "pkg-1",
		Score:  ptr(1.0),
		Source: json.RawMessage(`{"handle":"team/dataset","pointer":"1718000000","hash":"abc123","size":9000}`),
	}

	results := normaliseHits(domain.ScopePackage, []esHit{hit})

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, domain.ResultPackage, r.Type)
	assert.Equal(t, "team/dataset", r.Name)
	assert.Equal(t, "proj", r.Bucket)
	assert.Equal(t, "proj/team/dataset", r.Location)
	assert.Equal(t, int64(9000), r.Size)
	assert.Empty(t, r.Extension)
	assert.Equal(t, "1718000000", r.Metadata["pointer"])
	assert.Equal(t, "abc123", r.Metadata["hash"])
}

func TestNormaliseHits_PackageEntry(t *testing.T) {
	hit := esHit{
		Index:  "proj_packages",
		ID:     "entry-1",
		Source: json.RawMessage(`{"logical_key":"data/train.csv","handle":"team/dataset","size":42}`),
	}

	results := normaliseHits(domain.ScopePackageEntry, []esHit{hit})

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, domain.ResultPackageEntry, r.Type)
	assert.Equal(t, "data/train.csv", r.Name)
	assert.Equal(t, "proj/team/dataset/data/train.csv", r.Location)
	assert.Equal(t, "csv", r.Extension)
	assert.Equal(t, "team/dataset", r.Metadata["package"])
}

func TestNormaliseHits_GlobalDispatchesByIndexName(t *testing.T) {
	hits := []esHit{
		{
			Index:  "alpha",
			ID:     "f1",
			Source: json.RawMessage(`{"key":"report.csv","size":10}`),
		},
		{
			Index:  "alpha_packages",
			ID:     "e1",
			Source: json.RawMessage(`{"logical_key":"nested/file.txt","handle":"ns/pkg","size":5}`),
		},
	}

	results := normaliseHits(domain.ScopeGlobal, hits)

	require.Len(t, results, 2)
	assert.Equal(t, domain.ResultFile, results[0].Type)
	assert.Equal(t, "alpha", results[0].Bucket)
	assert.Equal(t, domain.ResultPackageEntry, results[1].Type)
	assert.Equal(t, "alpha", results[1].Bucket)
}

func TestNormaliseHits_DropsMalformed(t *testing.T) {
	hits := []esHit{
		{Index: "alpha", ID: "bad-json", Source: json.RawMessage(`{"key": 17}`)},
		{Index: "alpha", ID: "no-key", Source: json.RawMessage(`{"size":10}`)},
		{Index: "alpha", ID: "good", Source: json.RawMessage(`{"key":"ok.csv","size":1}`)},
	}

	results := normaliseHits(domain.ScopeFile, hits)

	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].ID)
}

func TestNormaliseHits_NullScore(t *testing.T) {
	hit := esHit{
		Index:  "alpha",
		ID:     "d1",
		Score:  nil,
		Source: json.RawMessage(`{"key":"ok.csv"}`),
	}

	results := normaliseHits(domain.ScopeFile, []esHit{hit})

	require.Len(t, results, 1)
	assert.Zero(t, results[0].Score)
}
