package corpus

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/domain/document"
	"github.com/kailas-cloud/bizfaq/internal/index"
	"github.com/kailas-cloud/bizfaq/internal/logger"
	"github.com/kailas-cloud/bizfaq/internal/metrics"
)

// Table names one configured table and where its text lives.
type Table struct {
	Kind     document.Kind
	Location string
}

// Service loads every configured table from a Source and builds an index.
type Service struct {
	source Source
	tables []Table
}

// New creates a corpus loader.
func New(source Source, tables []Table) *Service {
	return &Service{source: source, tables: tables}
}

// Tables returns the configured tables.
func (s *Service) Tables() []Table {
	out := make([]Table, len(s.tables))
	copy(out, s.tables)
	return out
}

// Load fetches all tables concurrently, then builds a fresh index.
// Any fetch failure aborts the load with a domain.SourceError; nothing is retried.
func (s *Service) Load(ctx context.Context) (*index.Index, Stats, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	texts := make([]TableText, len(s.tables))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range s.tables {
		g.Go(func() error {
			body, err := s.source.Fetch(gctx, t.Location)
			if err != nil {
				metrics.SourceFetchTotal.WithLabelValues(string(t.Kind), "error").Inc()
				return domain.NewSourceError(t.Location, err)
			}
			metrics.SourceFetchTotal.WithLabelValues(string(t.Kind), "ok").Inc()
			texts[i] = TableText{Kind: t.Kind, Name: t.Location, Text: body}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.IndexBuildsTotal.WithLabelValues("error").Inc()
		log.Error("table fetch failed", zap.String("source", s.source.Name()), zap.Error(err))
		return nil, Stats{}, err
	}

	log.Debug("tables fetched",
		zap.String("source", s.source.Name()),
		zap.Int("tables", len(texts)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return BuildFromText(ctx, texts...)
}
