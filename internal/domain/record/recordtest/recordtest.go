// Package recordtest builds records for tests in other packages.
package recordtest

import "github.com/kailas-cloud/bizfaq/internal/domain/record"

// FromPairs builds a Record from alternating name, value arguments.
func FromPairs(kv ...string) record.Record {
	header := make([]string, 0, len(kv)/2)
	row := make([]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		header = append(header, kv[i])
		row = append(row, kv[i+1])
	}
	return record.New(header, row)
}
