// Package engine classifies menu items against a diner's restrictions. The
// rules are centralized here so they stay testable: a compliance pass over
// components, a modification pass for items the kitchen can adjust, and a
// tolerance pass for allergens the diner accepts in a processed form.
package engine

import (
	"sync/atomic"

	"github.com/dinesafe/dinesafe/internal/models"
)

// Engine evaluates diner profiles against an immutable catalog snapshot.
// Evaluate is a pure function of the snapshot and its arguments, so an Engine
// is safe for concurrent use; ReplaceCatalog swaps the snapshot atomically
// without disturbing in-flight evaluations.
type Engine struct {
	catalog atomic.Pointer[models.Catalog]
}

func New(catalog *models.Catalog) *Engine {
	e := &Engine{}
	e.catalog.Store(catalog)
	return e
}

// Catalog returns the current snapshot.
func (e *Engine) Catalog() *models.Catalog {
	return e.catalog.Load()
}

// ReplaceCatalog installs a new snapshot. The old one stays valid for
// evaluations that already loaded it.
func (e *Engine) ReplaceCatalog(catalog *models.Catalog) {
	e.catalog.Store(catalog)
}
