package repositories

import (
	"context"

	"github.com/dinesafe/dinesafe/internal/models"
)

// MenuItemRepository is the read-only view of a menu item store. The engine
// never writes menu data; the store is someone else's system of record.
type MenuItemRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	Count(ctx context.Context) (int, error)
}
