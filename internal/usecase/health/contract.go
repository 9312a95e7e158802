package health

import "context"

// IndexChecker reports whether a searchable index is loaded.
type IndexChecker interface {
	Ready() bool
}

// SourceChecker checks that the table source is reachable.
type SourceChecker interface {
	Check(ctx context.Context) error
}
