package bizfaq

import "github.com/kailas-cloud/bizfaq/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyInput  = domain.ErrEmptyInput
	ErrEmptyCorpus = domain.ErrEmptyCorpus
)
