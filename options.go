package bizfaq

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/domain/document"
	"github.com/kailas-cloud/bizfaq/internal/usecase/corpus"
)

// Option configures Build.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	retrieval   domain.RetrievalConfig
	suggestions []string
	sourceNames []string
	extra       []corpus.TableText
	logger      *zap.Logger
}

func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		retrieval: defaultRetrieval(),
		logger:    zap.NewNop(),
	}
}

// WithMinScore sets the exclusive relevance floor (default 0.08).
func WithMinScore(score float64) Option {
	return optionFunc(func(c *engineConfig) {
		c.retrieval.MinScore = score
	})
}

// WithDefaultK sets the number of hits returned when a query does not ask
// for a specific count (default 3).
func WithDefaultK(k int) Option {
	return optionFunc(func(c *engineConfig) {
		if k > 0 {
			c.retrieval.DefaultTopK = k
		}
	})
}

// WithSourceNames sets the two table names the fallback answer suggests
// adding detail to, FAQ first.
func WithSourceNames(faq, business string) Option {
	return optionFunc(func(c *engineConfig) {
		c.sourceNames = []string{faq, business}
	})
}

// WithSuggestions sets the example topics offered by the fallback answer.
func WithSuggestions(topics ...string) Option {
	return optionFunc(func(c *engineConfig) {
		c.suggestions = topics
	})
}

// WithTable adds a table of another kind. Every column feeds the indexed
// text and ids are "{kind}_{id column or row number}".
func WithTable(kind, text string) Option {
	return optionFunc(func(c *engineConfig) {
		c.extra = append(c.extra, corpus.TableText{Kind: document.Kind(kind), Name: kind, Text: text})
	})
}

// WithLogger sets the logger used while building. Default: no logging.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		if l != nil {
			c.logger = l
		}
	})
}
