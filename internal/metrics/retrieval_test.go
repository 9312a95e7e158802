package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterRetrievalMetrics_Idempotent(t *testing.T) {
	RegisterRetrievalMetrics()
	RegisterRetrievalMetrics() // second call must not panic on duplicate registration
}

func TestRetrievalMetrics_Record(t *testing.T) {
	before := testutil.ToFloat64(QueriesTotal.WithLabelValues("miss"))
	QueriesTotal.WithLabelValues("miss").Inc()
	if got := testutil.ToFloat64(QueriesTotal.WithLabelValues("miss")); got != before+1 {
		t.Errorf("queries_total{miss} = %f, want %f", got, before+1)
	}

	IndexDocuments.WithLabelValues("faq").Set(7)
	if got := testutil.ToFloat64(IndexDocuments.WithLabelValues("faq")); got != 7 {
		t.Errorf("index_documents{faq} = %f, want 7", got)
	}

	IndexTerms.Set(42)
	if got := testutil.ToFloat64(IndexTerms); got != 42 {
		t.Errorf("index_terms = %f, want 42", got)
	}
}
