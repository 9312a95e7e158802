// Package reload keeps the live search service and replaces it wholesale on rebuild.
package reload

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/logger"
	"github.com/kailas-cloud/bizfaq/internal/metrics"
	"github.com/kailas-cloud/bizfaq/internal/usecase/corpus"
	"github.com/kailas-cloud/bizfaq/internal/usecase/search"
)

type snapshot struct {
	svc   *search.Service
	stats corpus.Stats
}

// Reloader owns the current search service. Queries read it lock-free;
// Reload builds a new index and swaps it in only when the build succeeds.
type Reloader struct {
	loader   Loader
	composer search.Composer
	cfg      domain.RetrievalConfig

	mu      sync.Mutex // serializes reloads
	current atomic.Pointer[snapshot]
}

// New creates a Reloader. Nothing is loaded until the first Reload.
func New(loader Loader, composer search.Composer, cfg domain.RetrievalConfig) *Reloader {
	return &Reloader{loader: loader, composer: composer, cfg: cfg}
}

// Reload builds a new index and makes it current. On failure the previous
// service keeps serving.
func (r *Reloader) Reload(ctx context.Context) (corpus.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ix, stats, err := r.loader.Load(ctx)
	if err != nil {
		if r.current.Load() != nil {
			logger.FromContext(ctx).Warn("reload failed, keeping previous index", zap.Error(err))
		}
		return corpus.Stats{}, fmt.Errorf("reload: %w", err)
	}

	r.current.Store(&snapshot{svc: search.New(ix, r.composer, r.cfg), stats: stats})

	metrics.IndexTerms.Set(float64(stats.Terms))
	metrics.IndexDocuments.Reset()
	for kind, n := range stats.ByKind {
		metrics.IndexDocuments.WithLabelValues(string(kind)).Set(float64(n))
	}
	return stats, nil
}

// Current returns the live service, or domain.ErrIndexNotReady before the
// first successful Reload.
func (r *Reloader) Current() (*search.Service, error) {
	s := r.current.Load()
	if s == nil {
		return nil, domain.ErrIndexNotReady
	}
	return s.svc, nil
}

// Stats returns the stats of the live index.
func (r *Reloader) Stats() (corpus.Stats, error) {
	s := r.current.Load()
	if s == nil {
		return corpus.Stats{}, domain.ErrIndexNotReady
	}
	return s.stats, nil
}

// Ready reports whether an index is loaded.
func (r *Reloader) Ready() bool {
	return r.current.Load() != nil
}
