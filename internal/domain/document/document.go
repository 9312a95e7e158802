// Package document defines the indexed unit: derived text plus tagged metadata.
package document

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/bizfaq/internal/domain/record"
)

// Document is one indexed row (immutable value object).
type Document struct {
	id   string
	text string
	meta Meta
}

// NewBusiness derives a business document from a parsed row.
// ID is "biz_" + id column, falling back to the name.
func NewBusiness(r record.Record) Document {
	b := BusinessFromRecord(r)
	return Document{
		id:   "biz_" + firstNonEmpty(b.ID, b.Name),
		text: joinText(b.searchable()),
		meta: Meta{kind: Business, business: &b, raw: r},
	}
}

// NewFAQ derives a FAQ document from a parsed row.
// ID is "faq_" + id column, falling back to the topic.
func NewFAQ(r record.Record) Document {
	f := FAQFromRecord(r)
	return Document{
		id:   "faq_" + firstNonEmpty(f.ID, f.Topic),
		text: joinText(f.searchable()),
		meta: Meta{kind: FAQ, faq: &f, raw: r},
	}
}

// NewGeneric derives a document of any other kind. Every field feeds the
// text in header order; row is the 1-based data row used when there is no id.
func NewGeneric(kind Kind, r record.Record, row int) Document {
	values := make([]string, 0, r.Len())
	for _, v := range r.All() {
		values = append(values, v)
	}
	return Document{
		id:   string(kind) + "_" + firstNonEmpty(r.Get("id"), strconv.Itoa(row)),
		text: joinText(values),
		meta: Meta{kind: kind, raw: r},
	}
}

// FromRecord dispatches on kind.
func FromRecord(kind Kind, r record.Record, row int) Document {
	switch kind {
	case Business:
		return NewBusiness(r)
	case FAQ:
		return NewFAQ(r)
	default:
		return NewGeneric(kind, r, row)
	}
}

// WithID returns a copy carrying a different id.
func (d Document) WithID(id string) Document {
	d.id = id
	return d
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Text returns the indexed text.
func (d Document) Text() string { return d.text }

// Meta returns the tagged metadata.
func (d Document) Meta() Meta { return d.meta }

// Kind is shorthand for Meta().Kind().
func (d Document) Kind() Kind { return d.meta.kind }

// Label returns the human-readable source label shown next to answers.
func (d Document) Label() string {
	switch d.meta.kind {
	case FAQ:
		f, _ := d.meta.FAQ()
		return "FAQ: " + firstNonEmpty(f.Topic, "entry")
	case Business:
		b, _ := d.meta.Business()
		return "Biz: " + firstNonEmpty(b.Name, "entry")
	default:
		return "Doc: " + d.id
	}
}

func joinText(parts []string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
