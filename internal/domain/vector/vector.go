// Package vector implements sparse term-weight vectors and cosine similarity.
package vector

import "math"

// TermVector is a sparse term -> weight map with a precomputed norm (immutable).
// Non-positive weights are never stored.
type TermVector struct {
	weights map[string]float64
	norm    float64
}

// New builds a vector from raw weights, dropping zero and negative entries.
// The norm is floored at 1 so it is always safe as a divisor.
func New(weights map[string]float64) TermVector {
	w := make(map[string]float64, len(weights))
	var sum float64
	for term, x := range weights {
		if x <= 0 {
			continue
		}
		w[term] = x
		sum += x * x
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		norm = 1
	}
	return TermVector{weights: w, norm: norm}
}

// Weight returns the weight of term (0 if absent).
func (v TermVector) Weight(term string) float64 { return v.weights[term] }

// Norm returns the Euclidean norm (1 for empty vectors).
func (v TermVector) Norm() float64 {
	if v.norm == 0 {
		return 1
	}
	return v.norm
}

// IsZero reports whether the vector has no terms.
func (v TermVector) IsZero() bool { return len(v.weights) == 0 }

// Dot sums v[t]*o[t] over the terms of v only.
func (v TermVector) Dot(o TermVector) float64 {
	var dot float64
	for t, w := range v.weights {
		dot += w * o.Weight(t)
	}
	return dot
}

// Cosine returns dot(q, d) / (|q| * |d|), iterating the query terms.
func Cosine(q, d TermVector) float64 {
	return q.Dot(d) / (q.Norm() * d.Norm())
}
