package corpus

import "context"

// Source fetches raw table text from wherever the tables live.
type Source interface {
	// Fetch returns the full text stored at location (a path, key or URL).
	Fetch(ctx context.Context, location string) (string, error)
	// Name identifies the driver in logs.
	Name() string
}
