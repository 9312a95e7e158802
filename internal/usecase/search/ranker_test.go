package search

import (
	"testing"

	"github.com/kailas-cloud/bizfaq/internal/domain/document"
	"github.com/kailas-cloud/bizfaq/internal/domain/record/recordtest"
	"github.com/kailas-cloud/bizfaq/internal/index"
)

func faqDoc(id, topic, content string) document.Document {
	return document.NewFAQ(recordtest.FromPairs("id", id, "topic", topic, "content", content))
}

func buildIndex(t *testing.T, docs ...document.Document) *index.Index {
	t.Helper()
	ix, err := index.Build(docs)
	if err != nil {
		t.Fatalf("index.Build: %v", err)
	}
	return ix
}

func corpus(t *testing.T) *index.Index {
	t.Helper()
	return buildIndex(t,
		faqDoc("1", "parking", "Free parking lot behind the building"),
		faqDoc("2", "hours", "Open Monday to Friday from nine to five"),
		faqDoc("3", "booking", "Book a table online or call ahead"),
		faqDoc("4", "pricing", "Lunch menu pricing starts at ten dollars"),
		faqDoc("5", "wifi", "Free wifi for customers"),
	)
}

func TestRank_SelfSimilarity(t *testing.T) {
	ix := corpus(t)
	for i, e := range ix.Entries() {
		hits := Rank(ix, e.Document.Text(), 3, 0.08)
		if len(hits) == 0 {
			t.Fatalf("doc %d: no hits for its own text", i)
		}
		if hits[0].Document().ID() != e.Document.ID() {
			t.Errorf("doc %d: top hit %s, want %s", i, hits[0].Document().ID(), e.Document.ID())
		}
		if hits[0].Score() <= 0.08 {
			t.Errorf("doc %d: self score %f not above floor", i, hits[0].Score())
		}
	}
}

func TestRank_ZeroFloor(t *testing.T) {
	ix := corpus(t)
	for _, q := range []string{"", "the and of your", "xyzxyz nonsense", "!!! ???"} {
		if hits := Rank(ix, q, 3, 0.08); len(hits) != 0 {
			t.Errorf("query %q: expected no hits, got %d", q, len(hits))
		}
	}
}

func TestRank_DescendingAndTruncated(t *testing.T) {
	ix := corpus(t)
	hits := Rank(ix, "free parking wifi lot", 2, 0)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Score() < hits[1].Score() {
		t.Errorf("not descending: %f < %f", hits[0].Score(), hits[1].Score())
	}
	if hits[0].Document().ID() != "faq_1" {
		t.Errorf("top hit = %s, want faq_1", hits[0].Document().ID())
	}
}

func TestRank_FloorIsExclusive(t *testing.T) {
	ix := corpus(t)
	all := Rank(ix, "free", 10, 0)
	if len(all) != 2 {
		t.Fatalf("expected 2 docs containing 'free', got %d", len(all))
	}
	// a floor equal to the best score removes it
	if hits := Rank(ix, "free", 10, all[0].Score()); len(hits) != 0 {
		t.Errorf("score == floor must be filtered, got %d hits", len(hits))
	}
}

func TestRank_StableTies(t *testing.T) {
	ix := buildIndex(t,
		faqDoc("a", "alpha", "shared"),
		faqDoc("b", "beta", "shared"),
		faqDoc("c", "gamma", "shared"),
	)
	hits := Rank(ix, "shared", 3, 0)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	for i, want := range []string{"faq_a", "faq_b", "faq_c"} {
		if hits[i].Document().ID() != want {
			t.Errorf("hit %d = %s, want %s", i, hits[i].Document().ID(), want)
		}
	}
	if hits[0].Score() != hits[2].Score() {
		t.Errorf("expected tied scores, got %f and %f", hits[0].Score(), hits[2].Score())
	}
}

func TestRank_KBelowOne(t *testing.T) {
	ix := corpus(t)
	if hits := Rank(ix, "free parking", 0, 0.08); len(hits) != 1 {
		t.Errorf("k=0 should behave as k=1, got %d hits", len(hits))
	}
}

func TestRank_DocumentWithoutTerms(t *testing.T) {
	ix := buildIndex(t,
		faqDoc("empty", "", "the of and"),
		faqDoc("p", "parking", "lot"),
	)
	hits := Rank(ix, "parking lot", 5, 0)
	if len(hits) != 1 || hits[0].Document().ID() != "faq_p" {
		t.Errorf("empty document must never score, got %d hits", len(hits))
	}
}
