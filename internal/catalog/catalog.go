// Package catalog loads the read-only menu catalog the engine evaluates.
// A source is read once at startup (and again on explicit reload); the
// resulting Catalog is never mutated.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dinesafe/dinesafe/internal/models"
)

// Source yields a fresh catalog snapshot.
type Source interface {
	Load(ctx context.Context) (*models.Catalog, error)
}

// FileSource reads the catalog from a local JSON file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Load(ctx context.Context) (*models.Catalog, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", f.Path, err)
	}
	return Parse(data)
}

// Parse decodes a catalog document. The document must be a JSON array of
// menu items; absent optional fields (tags, allergens, flags, modifications,
// cross-contact) decode to empty and are not an error, but an item without
// an id or name is a malformed entry and faults the load.
func Parse(data []byte) (*models.Catalog, error) {
	var items []models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("catalog is not a well-formed collection: %w", err)
	}
	for i, item := range items {
		if item.ID == "" || item.Name == "" {
			return nil, fmt.Errorf("malformed catalog entry at index %d: missing id or name", i)
		}
	}
	return &models.Catalog{Items: items}, nil
}
