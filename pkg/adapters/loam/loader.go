package loam

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts the Loam library to the ports.CatalogueLoader interface.
// Every document in the repository describes one action.
type Loader struct {
	Repo *loam.TypedRepository[ActionMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ActionMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// LoadCatalogue reads every document and builds the catalogue.
func (l *Loader) LoadCatalogue(ctx context.Context) (domain.Catalogue, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	c := make(domain.Catalogue, len(docs))
	for _, doc := range docs {
		key := actionKey(doc.ID, doc.Data)

		// Collision Detection
		if existingPath, ok := seen[key]; ok {
			return nil, fmt.Errorf("collision detected: action '%s' is defined in both '%s' and '%s'", key, existingPath, doc.ID)
		}
		seen[key] = doc.ID

		action, err := buildAction(key, doc.Data)
		if err != nil {
			return nil, err
		}
		c[key] = action
	}
	return c, nil
}

// ListActions lists the action keys in the repository, normalized and sorted.
func (l *Loader) ListActions(ctx context.Context) ([]string, error) {
	c, err := l.LoadCatalogue(ctx)
	if err != nil {
		return nil, err
	}
	return c.Keys(), nil
}

func actionKey(docID string, meta ActionMetadata) string {
	rawID := meta.ID
	if rawID == "" {
		rawID = docID
	}
	return trimExtension(rawID)
}

func buildAction(key string, meta ActionMetadata) (domain.Action, error) {
	cost := 1.0
	if meta.Cost != nil {
		c, err := domain.ToFloat(meta.Cost)
		if err != nil {
			return domain.Action{}, &domain.MalformedEntryError{Action: key, Field: "cost", Reason: err.Error(), Err: err}
		}
		if math.IsNaN(c) || c < 0 {
			return domain.Action{}, &domain.MalformedEntryError{Action: key, Field: "cost", Reason: fmt.Sprintf("invalid cost %g", c)}
		}
		cost = c
	}

	pre, err := domain.StateFromMap(meta.Preconditions)
	if err != nil {
		return domain.Action{}, &domain.MalformedEntryError{Action: key, Field: "preconditions", Reason: err.Error(), Err: err}
	}
	eff, err := domain.StateFromMap(meta.Effects)
	if err != nil {
		return domain.Action{}, &domain.MalformedEntryError{Action: key, Field: "effects", Reason: err.Error(), Err: err}
	}

	return domain.Action{
		Key:           key,
		Cost:          cost,
		Preconditions: pre.Rename(key + ".pre"),
		Effects:       eff.Rename(key),
	}, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch signals the ID of every changed document so callers can reload the catalogue.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
