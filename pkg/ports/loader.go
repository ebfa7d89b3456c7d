package ports

import (
	"context"

	"github.com/aretw0/goap/pkg/domain"
)

// CatalogueLoader defines how an action catalogue is retrieved.
// This allows the storage layer (Loam, files, memory) to be decoupled.
type CatalogueLoader interface {
	// LoadCatalogue returns every action definition known to the source.
	LoadCatalogue(ctx context.Context) (domain.Catalogue, error)

	// ListActions returns the action keys available, for introspection tools (e.g. 'goap graph').
	ListActions(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload in 'goap serve'.
type Watchable interface {
	// Watch returns a channel that carries the ID of every changed document.
	Watch(ctx context.Context) (<-chan string, error)
}
