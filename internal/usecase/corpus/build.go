package corpus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/domain/document"
	"github.com/kailas-cloud/bizfaq/internal/index"
	"github.com/kailas-cloud/bizfaq/internal/logger"
	"github.com/kailas-cloud/bizfaq/internal/metrics"
	"github.com/kailas-cloud/bizfaq/internal/table"
)

// TableText is the raw text of one table together with the kind of rows it holds.
type TableText struct {
	Kind document.Kind
	Name string
	Text string
}

// TableStat describes what one table contributed to a build.
type TableStat struct {
	Kind    document.Kind `json:"kind"`
	Name    string        `json:"name"`
	Records int           `json:"records"`
}

// Stats summarizes a finished build.
type Stats struct {
	BuildID   string                `json:"build_id"`
	Documents int                   `json:"documents"`
	Terms     int                   `json:"terms"`
	ByKind    map[document.Kind]int `json:"by_kind"`
	Tables    []TableStat           `json:"tables"`
	Duration  time.Duration         `json:"duration_ns"`
	BuiltAt   time.Time             `json:"built_at"`
}

// BuildFromText parses every table and indexes the combined rows in table order.
// A table with no rows contributes nothing; when every table is empty the
// build fails with domain.ErrEmptyCorpus.
func BuildFromText(ctx context.Context, tables ...TableText) (*index.Index, Stats, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	stats := Stats{BuildID: uuid.NewString(), Tables: make([]TableStat, 0, len(tables))}

	var docs []document.Document
	seen := make(map[string]int)
	for _, t := range tables {
		records, err := table.Parse(t.Text)
		switch {
		case errors.Is(err, domain.ErrEmptyInput):
			log.Warn("table has no rows", zap.String("table", t.Name), zap.String("kind", string(t.Kind)))
		case err != nil:
			metrics.IndexBuildsTotal.WithLabelValues("error").Inc()
			return nil, Stats{}, fmt.Errorf("parse %s: %w", t.Name, err)
		}
		stats.Tables = append(stats.Tables, TableStat{Kind: t.Kind, Name: t.Name, Records: len(records)})

		docs = append(docs, documents(t.Kind, records, seen)...)
	}

	ix, err := index.Build(docs)
	if err != nil {
		metrics.IndexBuildsTotal.WithLabelValues("error").Inc()
		return nil, Stats{}, err
	}

	stats.Documents = ix.Len()
	stats.Terms = ix.VocabularySize()
	stats.ByKind = ix.CountByKind()
	stats.Duration = time.Since(start)
	stats.BuiltAt = time.Now()

	metrics.IndexBuildsTotal.WithLabelValues("ok").Inc()
	metrics.IndexBuildDuration.Observe(stats.Duration.Seconds())

	log.Info("index built",
		zap.String("build_id", stats.BuildID),
		zap.Int("documents", stats.Documents),
		zap.Int("terms", stats.Terms),
		zap.Duration("elapsed", stats.Duration),
	)
	return ix, stats, nil
}
