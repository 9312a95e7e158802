package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/domain/search/request"
	"github.com/kailas-cloud/bizfaq/internal/domain/search/result"
	"github.com/kailas-cloud/bizfaq/internal/index"
	"github.com/kailas-cloud/bizfaq/internal/logger"
	"github.com/kailas-cloud/bizfaq/internal/metrics"
	"github.com/kailas-cloud/bizfaq/internal/tokenize"
)

// Service answers queries against one immutable index.
// A rebuild means constructing a new Service; instances are never mutated.
type Service struct {
	index    *index.Index
	composer Composer
	cfg      domain.RetrievalConfig
}

// New creates a search service over ix.
func New(ix *index.Index, composer Composer, cfg domain.RetrievalConfig) *Service {
	return &Service{index: ix, composer: composer, cfg: cfg}
}

// Search ranks documents for query. k <= 0 uses the configured default.
func (s *Service) Search(ctx context.Context, query string, k int) ([]result.Hit, error) {
	req, err := request.New(query, k, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	start := time.Now()
	hits := Rank(s.index, req.Query(), req.K(), req.MinScore())
	elapsed := time.Since(start)

	outcome := "hit"
	if len(hits) == 0 {
		outcome = "miss"
	}
	metrics.QueriesTotal.WithLabelValues(outcome).Inc()
	metrics.QueryDuration.Observe(elapsed.Seconds())
	metrics.QueryHits.Observe(float64(len(hits)))

	if ce := logger.FromContext(ctx).Check(zap.DebugLevel, "query ranked"); ce != nil {
		ce.Write(
			zap.String("query", req.Query()),
			zap.Strings("terms", tokenize.Terms(req.Query())),
			zap.Int("k", req.K()),
			zap.Int("hits", len(hits)),
			zap.Duration("elapsed", elapsed),
		)
	}
	return hits, nil
}

// Query ranks documents and composes the answer.
func (s *Service) Query(ctx context.Context, query string, k int) (result.Answer, []result.Hit, error) {
	hits, err := s.Search(ctx, query, k)
	if err != nil {
		return result.Answer{}, nil, err
	}
	return s.composer.Compose(query, hits), hits, nil
}
