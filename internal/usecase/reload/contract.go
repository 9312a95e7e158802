package reload

import (
	"context"

	"github.com/kailas-cloud/bizfaq/internal/index"
	"github.com/kailas-cloud/bizfaq/internal/usecase/corpus"
)

// Loader produces a freshly built index.
type Loader interface {
	Load(ctx context.Context) (*index.Index, corpus.Stats, error)
}
