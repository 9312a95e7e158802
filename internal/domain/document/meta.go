package document

import "github.com/kailas-cloud/bizfaq/internal/domain/record"

// Kind discriminates the source table a document came from.
type Kind string

const (
	// Business marks rows of the business facts table.
	Business Kind = "business"
	// FAQ marks rows of the FAQ knowledge table.
	FAQ Kind = "faq"
)

// BusinessMeta is the optional field set of a business row.
type BusinessMeta struct {
	ID        string
	Name      string
	Category  string
	Summary   string
	Offerings string
	Keywords  string
	Address   string
	City      string
	State     string
	Zip       string
	Phone     string
	Hours     string
	Website   string
	ImageURL  string
}

// BusinessFromRecord reads the business columns of r; absent columns stay empty.
func BusinessFromRecord(r record.Record) BusinessMeta {
	return BusinessMeta{
		ID:        r.Get("id"),
		Name:      r.Get("name"),
		Category:  r.Get("category"),
		Summary:   r.Get("summary"),
		Offerings: r.Get("offerings"),
		Keywords:  r.Get("keywords"),
		Address:   r.Get("address"),
		City:      r.Get("city"),
		State:     r.Get("state"),
		Zip:       r.Get("zip"),
		Phone:     r.Get("phone"),
		Hours:     r.Get("hours"),
		Website:   r.Get("website"),
		ImageURL:  r.Get("image_url"),
	}
}

// searchable lists the fields that feed the indexed text, in order.
func (b BusinessMeta) searchable() []string {
	return []string{
		b.Name, b.Category, b.Summary, b.Offerings, b.Keywords,
		b.Address, b.City, b.State, b.Zip, b.Hours,
	}
}

// FAQMeta is the optional field set of a FAQ row.
type FAQMeta struct {
	ID      string
	Topic   string
	Content string
	Tags    string
}

// FAQFromRecord reads the FAQ columns of r; absent columns stay empty.
func FAQFromRecord(r record.Record) FAQMeta {
	return FAQMeta{
		ID:      r.Get("id"),
		Topic:   r.Get("topic"),
		Content: r.Get("content"),
		Tags:    r.Get("tags"),
	}
}

func (f FAQMeta) searchable() []string {
	return []string{f.Topic, f.Content, f.Tags}
}

// Meta is the tagged metadata variant attached to a document.
// Exactly one of the typed views is set for business and faq kinds;
// every kind keeps the raw record for generic rendering.
type Meta struct {
	kind     Kind
	business *BusinessMeta
	faq      *FAQMeta
	raw      record.Record
}

// Kind returns the discriminator.
func (m Meta) Kind() Kind { return m.kind }

// Business returns the business view when Kind() == Business.
func (m Meta) Business() (BusinessMeta, bool) {
	if m.business == nil {
		return BusinessMeta{}, false
	}
	return *m.business, true
}

// FAQ returns the FAQ view when Kind() == FAQ.
func (m Meta) FAQ() (FAQMeta, bool) {
	if m.faq == nil {
		return FAQMeta{}, false
	}
	return *m.faq, true
}

// Record returns the source row.
func (m Meta) Record() record.Record { return m.raw }
