package chi

import "github.com/kailas-cloud/bizfaq/internal/domain/record"

// ErrorResponseCode is the machine-readable error code in every error body.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest        ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized      ErrorResponseCode = "unauthorized"
	ErrorResponseCodeEmptyInput        ErrorResponseCode = "empty_input"
	ErrorResponseCodeInvalidQuery      ErrorResponseCode = "invalid_query"
	ErrorResponseCodeEmptyCorpus       ErrorResponseCode = "empty_corpus"
	ErrorResponseCodeSourceUnavailable ErrorResponseCode = "source_unavailable"
	ErrorResponseCodeIndexNotReady     ErrorResponseCode = "index_not_ready"
	ErrorResponseCodeInternalError     ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Query string `json:"query"`
	K     *int   `json:"k,omitempty"`
}

// HitResponse is one ranked document.
type HitResponse struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// QueryResponse is the body returned by POST /query.
type QueryResponse struct {
	Answer  string        `json:"answer"`
	Sources []string      `json:"sources"`
	Matched bool          `json:"matched"`
	Hits    []HitResponse `json:"hits"`
}

// SearchResponse is the body returned by GET /search.
type SearchResponse struct {
	Query string        `json:"query"`
	Hits  []HitResponse `json:"hits"`
	Count int           `json:"count"`
}

// ParseResponse is the body returned by POST /parse.
type ParseResponse struct {
	Records []record.Record `json:"records"`
	Count   int             `json:"count"`
}

// ReloadResponse is the body returned by POST /reload.
type ReloadResponse struct {
	BuildID   string `json:"build_id"`
	Documents int    `json:"documents"`
	Terms     int    `json:"terms"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
