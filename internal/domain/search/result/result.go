// Package result holds ranked hits and the composed answer returned to callers.
package result

import "github.com/kailas-cloud/bizfaq/internal/domain/document"

// Hit is a single ranked document.
type Hit struct {
	score    float64
	document document.Document
	label    string
}

// New creates a hit; the source label is derived from the document.
func New(score float64, doc document.Document) Hit {
	return Hit{score: score, document: doc, label: doc.Label()}
}

// Score returns the cosine similarity.
func (h *Hit) Score() float64 { return h.score }

// Document returns the matched document.
func (h *Hit) Document() document.Document { return h.document }

// SourceLabel returns the human-readable source label.
func (h *Hit) SourceLabel() string { return h.label }

// Answer is the formatted reply plus the source label of each hit, in rank order.
type Answer struct {
	Text    string
	Sources []string
}

// IsFallback reports whether the answer carries no sources.
func (a Answer) IsFallback() bool { return len(a.Sources) == 0 }
