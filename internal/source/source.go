// Package source provides the table text drivers: local files, Redis keys and HTTP URLs.
package source

import (
	"context"
	"fmt"
)

// Statter reports whether a table location is reachable without reading it.
type Statter interface {
	Stat(ctx context.Context, location string) error
}

// Prober checks every configured table location of one source.
type Prober struct {
	src       Statter
	locations []string
}

// NewProber creates a health probe over locations.
func NewProber(src Statter, locations ...string) *Prober {
	return &Prober{src: src, locations: locations}
}

// Check returns the first unreachable location.
func (p *Prober) Check(ctx context.Context) error {
	for _, loc := range p.locations {
		if err := p.src.Stat(ctx, loc); err != nil {
			return fmt.Errorf("probe %s: %w", loc, err)
		}
	}
	return nil
}
