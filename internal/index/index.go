// Package index builds the TF-IDF vector index over a fixed document set.
package index

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/domain/document"
	"github.com/kailas-cloud/bizfaq/internal/domain/vector"
	"github.com/kailas-cloud/bizfaq/internal/tokenize"
)

// Entry pairs a document with its weighted term vector.
type Entry struct {
	Vector   vector.TermVector
	Document document.Document
}

// Index is the read-only result of Build. Safe for concurrent readers.
type Index struct {
	entries []Entry
	idf     map[string]float64
}

// Build tokenizes every document and computes
//
//	idf(t)    = ln((N+1) / (df(t)+1)) + 1
//	w(t, d)   = (1 + ln(tf(t, d))) * idf(t)
//
// Entries keep the input order. An empty document set returns domain.ErrEmptyCorpus.
func Build(docs []document.Document) (*Index, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("build index: %w", domain.ErrEmptyCorpus)
	}

	tfs := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		tf := tokenize.Frequencies(d.Text())
		tfs[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((n+1)/(float64(count)+1)) + 1
	}

	ix := &Index{entries: make([]Entry, len(docs)), idf: idf}
	for i, d := range docs {
		ix.entries[i] = Entry{Vector: ix.weigh(tfs[i]), Document: d}
	}
	return ix, nil
}

// Vectorize weighs text against the corpus idf. Terms unseen at build time are dropped.
func (ix *Index) Vectorize(text string) vector.TermVector {
	return ix.weigh(tokenize.Frequencies(text))
}

func (ix *Index) weigh(tf map[string]int) vector.TermVector {
	weights := make(map[string]float64, len(tf))
	for term, count := range tf {
		idf, ok := ix.idf[term]
		if !ok {
			continue
		}
		weights[term] = (1 + math.Log(float64(count))) * idf
	}
	return vector.New(weights)
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.entries) }

// Entries returns the indexed documents in corpus order.
// The slice is shared; callers must not modify it.
func (ix *Index) Entries() []Entry { return ix.entries }

// VocabularySize returns the number of distinct terms.
func (ix *Index) VocabularySize() int { return len(ix.idf) }

// CountByKind returns the number of documents per kind.
func (ix *Index) CountByKind() map[document.Kind]int {
	counts := make(map[document.Kind]int)
	for _, e := range ix.entries {
		counts[e.Document.Kind()]++
	}
	return counts
}
