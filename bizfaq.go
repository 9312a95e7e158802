// Package bizfaq answers natural-language questions about a small business
// from two comma-delimited tables: a business directory and a FAQ knowledge
// base. Rows are indexed with TF-IDF and ranked by cosine similarity; the
// best matches are rendered into a plain-text answer with source labels.
//
//	eng, err := bizfaq.Build(businessCSV, faqCSV)
//	if err != nil { ... }
//	ans := eng.Query("where can I park", nil)
//	fmt.Println(ans.Text, ans.Sources)
//
// An Engine is immutable and safe for concurrent use. To pick up new table
// contents build a new Engine.
package bizfaq

import (
	"context"

	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/domain/document"
	"github.com/kailas-cloud/bizfaq/internal/logger"
	"github.com/kailas-cloud/bizfaq/internal/table"
	"github.com/kailas-cloud/bizfaq/internal/usecase/answer"
	"github.com/kailas-cloud/bizfaq/internal/usecase/corpus"
	searchuc "github.com/kailas-cloud/bizfaq/internal/usecase/search"
)

// Engine holds one built index and answers queries against it.
type Engine struct {
	svc      *searchuc.Service
	composer *answer.Composer
	stats    Stats
}

// Parse converts table text into records. It returns ErrEmptyInput when the
// text holds no rows at all.
func Parse(text string) ([]Record, error) {
	recs, err := table.Parse(text)
	if err != nil {
		return nil, err
	}
	return fromInternalRecords(recs), nil
}

// Build parses both tables, plus any added with WithTable, and indexes every
// row. An empty table is tolerated; when no table yields a row Build returns
// ErrEmptyCorpus.
func Build(businessCSV, faqCSV string, opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	tables := append([]corpus.TableText{
		{Kind: document.Business, Name: "business", Text: businessCSV},
		{Kind: document.FAQ, Name: "faq", Text: faqCSV},
	}, cfg.extra...)

	ctx := logger.ContextWithLogger(context.Background(), cfg.logger)
	ix, stats, err := corpus.BuildFromText(ctx, tables...)
	if err != nil {
		return nil, err
	}

	composer := answer.New(cfg.suggestions, cfg.sourceNames)
	return &Engine{
		svc:      searchuc.New(ix, composer, cfg.retrieval),
		composer: composer,
		stats:    fromInternalStats(stats),
	}, nil
}

// Query ranks the rows against query and composes the answer. A query that
// matches nothing yields the fallback answer with no sources.
func (e *Engine) Query(query string, opts *QueryOptions) Answer {
	ans, _, err := e.svc.Query(context.Background(), query, opts.k())
	if err != nil {
		// a rejected query reads as no match
		return fromInternalAnswer(e.composer.Compose(query, nil))
	}
	return fromInternalAnswer(ans)
}

// Search returns the ranked hits without composing an answer.
func (e *Engine) Search(query string, opts *QueryOptions) []Hit {
	hits, err := e.svc.Search(context.Background(), query, opts.k())
	if err != nil {
		return nil
	}
	return fromInternalHits(hits)
}

// Stats describes the built index.
func (e *Engine) Stats() Stats {
	return e.stats
}

// QueryOptions tunes a single query. A nil *QueryOptions uses the defaults.
type QueryOptions struct {
	// K is the maximum number of hits; <= 0 uses the engine default (3).
	K int
}

func (o *QueryOptions) k() int {
	if o == nil {
		return 0
	}
	return o.K
}

func defaultRetrieval() domain.RetrievalConfig {
	cfg := domain.DefaultRetrievalConfig()
	// library callers own their input; no transport limits apply
	cfg.MaxTopK = 0
	cfg.MaxQueryLength = 0
	return cfg
}
