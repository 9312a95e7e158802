package search

import (
	"sort"

	"github.com/kailas-cloud/bizfaq/internal/domain/search/result"
	"github.com/kailas-cloud/bizfaq/internal/domain/vector"
	"github.com/kailas-cloud/bizfaq/internal/index"
)

// Rank scores every document against query by cosine similarity and returns
// at most k hits with score > minScore, best first. Equal scores keep corpus
// order. A query with no known terms yields no hits.
func Rank(ix *index.Index, query string, k int, minScore float64) []result.Hit {
	if k < 1 {
		k = 1
	}
	q := ix.Vectorize(query)
	if q.IsZero() {
		return nil
	}

	entries := ix.Entries()
	scored := make([]result.Hit, len(entries))
	for i, e := range entries {
		scored[i] = result.New(vector.Cosine(q, e.Vector), e.Document)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score() > scored[j].Score()
	})

	hits := make([]result.Hit, 0, k)
	for _, h := range scored {
		if h.Score() <= minScore {
			// sorted descending: nothing further can pass
			break
		}
		hits = append(hits, h)
		if len(hits) == k {
			break
		}
	}
	return hits
}
