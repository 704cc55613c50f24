package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MenuItemRepository struct {
	pool *pgxpool.Pool
}

func NewMenuItemRepository(pool *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{pool: pool}
}

func (r *MenuItemRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	query := `
        SELECT
            id,
            name,
            category,
            tags,
            cross_contact,
            components,
            modifications
        FROM menu_items
        ORDER BY id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menuItems []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		var componentsJSON, modificationsJSON []byte
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.Tags,
			&item.CrossContact,
			&componentsJSON,
			&modificationsJSON,
		)
		if err != nil {
			return nil, err
		}
		if len(componentsJSON) > 0 {
			if err := json.Unmarshal(componentsJSON, &item.Components); err != nil {
				return nil, fmt.Errorf("malformed components for menu item %s: %w", item.ID, err)
			}
		}
		if len(modificationsJSON) > 0 {
			if err := json.Unmarshal(modificationsJSON, &item.Modifications); err != nil {
				return nil, fmt.Errorf("malformed modifications for menu item %s: %w", item.ID, err)
			}
		}
		menuItems = append(menuItems, item)
	}
	return menuItems, rows.Err()
}

func (r *MenuItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count)
	return count, err
}
