// Package table parses comma-delimited text tables with a header row.
package table

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/domain/record"
)

// Parse converts raw table text into records keyed by the header row.
//
// Fields are separated by ',' and may be quoted with '"'; a doubled quote
// inside quotes is a literal quote. "\n", "\r\n" and a lone "\r" end a row.
// Header names and values are trimmed, rows with only blank fields are
// skipped. Malformed rows never fail: short rows are padded with "" and
// extra fields are dropped.
//
// The only error is domain.ErrEmptyInput, returned when the text holds no
// rows at all or every row, header included, is blank.
func Parse(text string) ([]record.Record, error) {
	rows := splitRows(text)
	if !slices.ContainsFunc(rows, func(r []string) bool { return !isBlank(r) }) {
		return nil, domain.ErrEmptyInput
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]record.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		trimmed := make([]string, len(row))
		for i, v := range row {
			trimmed[i] = strings.TrimSpace(v)
		}
		records = append(records, record.New(header, trimmed))
	}
	return records, nil
}

// splitRows runs the quote-aware scanner over text and returns raw fields.
func splitRows(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	pushField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	pushRow := func() {
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			pushField()
		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			pushField()
			pushRow()
		default:
			field.WriteByte(c)
		}
	}
	if field.Len() > 0 || len(row) > 0 {
		pushField()
		pushRow()
	}
	return rows
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
