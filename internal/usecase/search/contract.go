package search

import "github.com/kailas-cloud/bizfaq/internal/domain/search/result"

// Composer renders ranked hits into an answer.
type Composer interface {
	Compose(query string, hits []result.Hit) result.Answer
}
