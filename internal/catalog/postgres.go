package catalog

import (
	"context"
	"fmt"

	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/dinesafe/dinesafe/internal/repositories"
	"github.com/dinesafe/dinesafe/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads the catalog from a menu_items table.
type PostgresSource struct {
	repo repositories.MenuItemRepository
}

func NewPostgresSource(ctx context.Context, cfg models.DatabaseConfig) (*PostgresSource, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return &PostgresSource{repo: postgres.NewMenuItemRepository(pool)}, nil
}

func (p *PostgresSource) Load(ctx context.Context) (*models.Catalog, error) {
	items, err := p.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	return &models.Catalog{Items: items}, nil
}

// FromConfig builds the configured catalog source.
func FromConfig(ctx context.Context, cfg *models.Config) (Source, error) {
	switch cfg.CatalogSource {
	case "", "file":
		return NewFileSource(cfg.CatalogPath), nil
	case "s3":
		return NewS3Source(ctx, cfg.CloudStorage.Region, cfg.CloudStorage.BucketName, cfg.CloudStorage.ObjectKey)
	case "postgres":
		return NewPostgresSource(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", cfg.CatalogSource)
	}
}
