package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/goap/pkg/domain"
)

// Loader implements ports.CatalogueLoader using an in-memory catalogue.
type Loader struct {
	catalogue domain.Catalogue
}

// NewLoader creates a new Loader serving a copy of c.
func NewLoader(c domain.Catalogue) *Loader {
	cp := make(domain.Catalogue, len(c))
	for k, v := range c {
		cp[k] = v
	}
	return &Loader{catalogue: cp}
}

// NewFromActions creates a new Loader from individual actions.
// This handles keying automatically, improving DX for tests.
func NewFromActions(actions ...domain.Action) (*Loader, error) {
	c := make(domain.Catalogue, len(actions))
	for _, a := range actions {
		if a.Key == "" {
			return nil, fmt.Errorf("action missing key")
		}
		if _, dup := c[a.Key]; dup {
			return nil, fmt.Errorf("duplicate action %s", a.Key)
		}
		c[a.Key] = a
	}
	return &Loader{catalogue: c}, nil
}

// LoadCatalogue returns a copy of the catalogue.
func (l *Loader) LoadCatalogue(ctx context.Context) (domain.Catalogue, error) {
	cp := make(domain.Catalogue, len(l.catalogue))
	for k, v := range l.catalogue {
		cp[k] = v
	}
	return cp, nil
}

// ListActions returns all action keys in deterministic order.
func (l *Loader) ListActions(ctx context.Context) ([]string, error) {
	return l.catalogue.Keys(), nil
}
