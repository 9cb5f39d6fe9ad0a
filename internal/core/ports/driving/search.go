package driving

import (
	"context"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// SearchService provides federated catalog search to external actors.
type SearchService interface {
	// Search runs one query through analysis, backend selection,
	// execution and post-filtering. Failures the response taxonomy
	// covers come back inside the response with Success=false; the
	// error return is reserved for caller bugs such as an invalid
	// scope or backend name.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)
}
