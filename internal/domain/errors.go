package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput signals a table with zero rows (not even a header).
	ErrEmptyInput = errors.New("empty input")
	// ErrEmptyCorpus signals that no documents were available to index.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrSourceUnavailable signals that raw table text could not be obtained.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrInvalidQuery signals a query rejected before ranking.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrIndexNotReady signals that no index has been loaded yet.
	ErrIndexNotReady = errors.New("index not ready")
)

// SourceError wraps ErrSourceUnavailable with the name of the failing table source.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSourceUnavailable.Error(), e.Source, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is.
func (e *SourceError) Unwrap() []error { return []error{ErrSourceUnavailable, e.Err} }

// NewSourceError creates a source failure error.
func NewSourceError(source string, err error) error {
	return &SourceError{Source: source, Err: err}
}
