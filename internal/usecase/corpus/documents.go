package corpus

import (
	"strconv"

	"github.com/kailas-cloud/bizfaq/internal/domain/document"
	"github.com/kailas-cloud/bizfaq/internal/domain/record"
)

// Documents converts parsed rows of one table into documents, in row order.
// Duplicate ids get a "-2", "-3"... suffix.
func Documents(kind document.Kind, records []record.Record) []document.Document {
	return documents(kind, records, make(map[string]int))
}

func documents(kind document.Kind, records []record.Record, seen map[string]int) []document.Document {
	docs := make([]document.Document, len(records))
	for i, r := range records {
		docs[i] = document.FromRecord(kind, r, i+1)
	}
	return uniqueIDs(docs, seen)
}

// uniqueIDs renames documents whose id was already seen. seen is shared
// across tables so ids stay unique for a whole build.
func uniqueIDs(docs []document.Document, seen map[string]int) []document.Document {
	for i, d := range docs {
		id := d.ID()
		seen[id]++
		n := seen[id]
		if n == 1 {
			continue
		}
		next := id + "-" + strconv.Itoa(n)
		for seen[next] > 0 {
			n++
			next = id + "-" + strconv.Itoa(n)
		}
		seen[id] = n
		seen[next] = 1
		docs[i] = d.WithID(next)
	}
	return docs
}
