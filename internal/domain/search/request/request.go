// Package request validates query parameters before ranking.
package request

import (
	"fmt"

	"github.com/kailas-cloud/bizfaq/internal/domain"
)

// Request is a validated query.
type Request struct {
	query    string
	k        int
	minScore float64
}

// New validates and normalizes query parameters against cfg.
// k <= 0 falls back to cfg.DefaultTopK; k above cfg.MaxTopK is clamped.
// An empty query is valid and simply ranks nothing.
func New(query string, k int, cfg domain.RetrievalConfig) (Request, error) {
	if cfg.MaxQueryLength > 0 && len(query) > cfg.MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d bytes)", domain.ErrInvalidQuery, cfg.MaxQueryLength)
	}
	if k <= 0 {
		k = cfg.DefaultTopK
	}
	if cfg.MaxTopK > 0 && k > cfg.MaxTopK {
		k = cfg.MaxTopK
	}
	if k < 1 {
		k = 1
	}
	return Request{query: query, k: k, minScore: cfg.MinScore}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// K returns the maximum number of hits.
func (r *Request) K() int { return r.k }

// MinScore returns the relevance floor (exclusive).
func (r *Request) MinScore() float64 { return r.minScore }
