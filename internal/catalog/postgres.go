package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// PostgresSource is the Postgres-backed catalog: one row per venue in
// the venues table. It doubles as the write side for the seed command.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(ctx context.Context, connString string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

func (p *PostgresSource) Close() {
	p.pool.Close()
}

func (p *PostgresSource) Load(ctx context.Context) ([]*models.CatalogEntry, error) {
	query := `
        SELECT name, address, socials, menu_url, photo_url,
               establishment_type, vibe, aim, cuisine, menu
        FROM venues
        ORDER BY name
    `
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	var entries []*models.CatalogEntry
	for rows.Next() {
		var e models.CatalogEntry
		err := rows.Scan(
			&e.Name,
			&e.Address,
			&e.Socials,
			&e.MenuURL,
			&e.PhotoURL,
			&e.EstablishmentType,
			&e.Vibe,
			&e.Aim,
			&e.Cuisine,
			&e.Menu,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue row: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (p *PostgresSource) BulkCreate(ctx context.Context, entries []*models.CatalogEntry) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		query := `
            INSERT INTO venues (
                name, address, socials, menu_url, photo_url,
                establishment_type, vibe, aim, cuisine, menu
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `
		_, err = tx.Exec(ctx, query,
			e.Name,
			e.Address,
			e.Socials,
			e.MenuURL,
			e.PhotoURL,
			e.EstablishmentType,
			e.Vibe,
			e.Aim,
			e.Cuisine,
			e.Menu,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (p *PostgresSource) Count(ctx context.Context) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM venues").Scan(&count)
	return count, err
}

func (p *PostgresSource) DeleteAll(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, "DELETE FROM venues")
	return err
}
