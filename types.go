package bizfaq

import (
	"time"

	"github.com/kailas-cloud/bizfaq/internal/domain/record"
	"github.com/kailas-cloud/bizfaq/internal/domain/search/result"
	"github.com/kailas-cloud/bizfaq/internal/usecase/corpus"
)

// Record is one parsed table row.
type Record struct {
	// Fields lists the header names in column order.
	Fields []string
	Values map[string]string
}

// Get returns the value of field, or "" when the column is absent.
func (r Record) Get(field string) string { return r.Values[field] }

// Hit is one ranked row.
type Hit struct {
	ID     string            `json:"id"`
	Kind   string            `json:"kind"`
	Label  string            `json:"label"`
	Score  float64           `json:"score"`
	Text   string            `json:"text"`
	Fields map[string]string `json:"fields"`
}

// Answer is the composed reply and the source label of each hit, best first.
// Sources is empty, never nil, when nothing matched.
type Answer struct {
	Text    string
	Sources []string
}

// Stats describes a built index.
type Stats struct {
	BuildID   string
	Documents int
	Terms     int
	ByKind    map[string]int
	BuiltAt   time.Time
}

func fromInternalRecords(recs []record.Record) []Record {
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = Record{Fields: r.Fields(), Values: r.Map()}
	}
	return out
}

func fromInternalHits(hits []result.Hit) []Hit {
	out := make([]Hit, len(hits))
	for i := range hits {
		h := &hits[i]
		doc := h.Document()
		out[i] = Hit{
			ID:     doc.ID(),
			Kind:   string(doc.Kind()),
			Label:  h.SourceLabel(),
			Score:  h.Score(),
			Text:   doc.Text(),
			Fields: doc.Meta().Record().Map(),
		}
	}
	return out
}

func fromInternalAnswer(a result.Answer) Answer {
	sources := a.Sources
	if sources == nil {
		sources = []string{}
	}
	return Answer{Text: a.Text, Sources: sources}
}

func fromInternalStats(s corpus.Stats) Stats {
	byKind := make(map[string]int, len(s.ByKind))
	for k, n := range s.ByKind {
		byKind[string(k)] = n
	}
	return Stats{
		BuildID:   s.BuildID,
		Documents: s.Documents,
		Terms:     s.Terms,
		ByKind:    byKind,
		BuiltAt:   s.BuiltAt,
	}
}
