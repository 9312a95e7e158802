// Package answer renders ranked hits into a reply with source labels.
package answer

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/bizfaq/internal/domain/document"
	"github.com/kailas-cloud/bizfaq/internal/domain/search/result"
)

const (
	header  = "Here’s what I found:"
	closing = "If you want, tell me what you’re trying to do next (call, directions, booking, pricing)."
)

// DefaultSuggestions are the example query terms offered when nothing matches.
var DefaultSuggestions = []string{"hours", "address", "parking", "booking", "menu", "pricing"}

// DefaultSourceNames are the data files mentioned in the fallback reply.
var DefaultSourceNames = []string{"data/faq_kb.csv", "data/business.csv"}

// Composer formats answers. It holds no state besides its fallback wording.
type Composer struct {
	suggestions []string
	sourceNames []string
}

// New creates a composer. Empty arguments fall back to the defaults.
func New(suggestions, sourceNames []string) *Composer {
	if len(suggestions) == 0 {
		suggestions = DefaultSuggestions
	}
	if len(sourceNames) == 0 {
		sourceNames = DefaultSourceNames
	}
	return &Composer{suggestions: suggestions, sourceNames: sourceNames}
}

// Compose renders hits in rank order. With no hits it returns the fallback
// reply and an empty (non-nil) source list.
func (c *Composer) Compose(_ string, hits []result.Hit) result.Answer {
	if len(hits) == 0 {
		return result.Answer{Text: c.Fallback(), Sources: []string{}}
	}

	lines := make([]string, len(hits))
	sources := make([]string, len(hits))
	for i := range hits {
		lines[i] = renderLine(i+1, hits[i].Document())
		sources[i] = hits[i].SourceLabel()
	}

	text := header + "\n\n" + strings.Join(lines, "\n\n") + "\n\n" + closing
	return result.Answer{Text: text, Sources: sources}
}

// Fallback returns the reply used when no document clears the relevance floor.
func (c *Composer) Fallback() string {
	quoted := make([]string, len(c.suggestions))
	for i, s := range c.suggestions {
		quoted[i] = "“" + s + "”"
	}
	return "I didn’t find a strong match in the CSV.\n\n" +
		"Try:\n" +
		"• " + strings.Join(quoted, ", ") + "\n" +
		"• or add more detail in " + strings.Join(c.sourceNames, " and ") + "."
}

func renderLine(rank int, d document.Document) string {
	meta := d.Meta()
	if f, ok := meta.FAQ(); ok {
		return fmt.Sprintf("%d) FAQ: %s — %s", rank, f.Topic, f.Content)
	}
	if b, ok := meta.Business(); ok {
		line := fmt.Sprintf("%d) %s (%s) — %s", rank, b.Name, b.Category, b.Summary)
		if b.ImageURL != "" {
			line += "\n   Image: " + b.ImageURL
		}
		return line
	}
	return fmt.Sprintf("%d) %s", rank, d.Text())
}
