package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"reviewhub-backend/internal/domains/catalog"
)

// postgresRepository serves one catalog table. The table name comes
// from the Kind constant, never from request input.
type postgresRepository struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresRepository(pool *pgxpool.Pool, kind catalog.Kind) catalog.Repository {
	return &postgresRepository{pool: pool, table: kind.Table()}
}

func (r *postgresRepository) Create(ctx context.Context, e *catalog.Entity) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, name, slug) VALUES ($1, $2, $3)`, r.table)

	_, err := r.pool.Exec(ctx, query, e.ID, e.Name, e.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return catalog.ErrSlugTaken
		}
		return fmt.Errorf("failed to create %s: %w", r.table, err)
	}

	return nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Entity, error) {
	query := fmt.Sprintf(`SELECT id, name, slug FROM %s WHERE slug = $1`, r.table)

	e := &catalog.Entity{}
	err := r.pool.QueryRow(ctx, query, slug).Scan(&e.ID, &e.Name, &e.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.table, err)
	}

	return e, nil
}

func (r *postgresRepository) GetBySlugs(ctx context.Context, slugs []string) ([]*catalog.Entity, error) {
	query := fmt.Sprintf(`SELECT id, name, slug FROM %s WHERE slug = ANY($1)`, r.table)

	rows, err := r.pool.Query(ctx, query, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by slugs: %w", r.table, err)
	}
	defer rows.Close()

	var entities []*catalog.Entity
	for rows.Next() {
		e := &catalog.Entity{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.table, err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.table, err)
	}

	return entities, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Entity, error) {
	query := fmt.Sprintf(`SELECT id, name, slug FROM %s WHERE id = $1`, r.table)

	e := &catalog.Entity{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.table, err)
	}

	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, req catalog.ListRequest) ([]*catalog.Entity, int, error) {
	query := fmt.Sprintf(
		`SELECT id, name, slug FROM %s WHERE name ILIKE $1 ORDER BY name LIMIT $2 OFFSET $3`,
		r.table)

	pattern := "%" + req.Search + "%"
	rows, err := r.pool.Query(ctx, query, pattern, req.Limit, req.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	defer rows.Close()

	var entities []*catalog.Entity
	for rows.Next() {
		e := &catalog.Entity{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Slug); err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s: %w", r.table, err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", r.table, err)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE name ILIKE $1`, r.table)
	if err := r.pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", r.table, err)
	}

	return entities, total, nil
}

func (r *postgresRepository) DeleteBySlug(ctx context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE slug = $1`, r.table)

	result, err := r.pool.Exec(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.table, err)
	}

	if result.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}

	return nil
}
