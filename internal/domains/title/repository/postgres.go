package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"reviewhub-backend/internal/domains/title"
	"reviewhub-backend/pkg/database"
)

type titleRepository struct {
	db *pgxpool.Pool
}

func NewTitleRepository(db *pgxpool.Pool) title.Repository {
	return &titleRepository{db: db}
}

// rowColumns selects the title together with its resolved category,
// genre arrays and average review score.
const rowColumns = `
	t.id, t.name, t.year, t.description, t.category_id, t.created_at,
	c.slug, c.name,
	(SELECT ROUND(AVG(r.score)::numeric, 2)::float8
	   FROM reviews r WHERE r.title_id = t.id) AS rating,
	COALESCE((SELECT array_agg(g.slug ORDER BY g.name)
	   FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
	  WHERE tg.title_id = t.id), '{}'),
	COALESCE((SELECT array_agg(g.name ORDER BY g.name)
	   FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
	  WHERE tg.title_id = t.id), '{}')`

func (r *titleRepository) Create(ctx context.Context, t *title.Title, genreIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO titles (id, name, year, description, category_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`

		err := tx.QueryRow(ctx, query, t.ID, t.Name, t.Year, t.Description, t.CategoryID).
			Scan(&t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create title: %w", err)
		}

		return insertGenreLinks(ctx, tx, t.ID, genreIDs)
	})
}

func (r *titleRepository) GetByID(ctx context.Context, id uuid.UUID) (*title.Row, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1`, rowColumns)

	row, err := scanRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, title.ErrTitleNotFound
		}
		return nil, fmt.Errorf("failed to get title: %w", err)
	}
	return row, nil
}

func (r *titleRepository) List(ctx context.Context, req title.ListRequest) ([]*title.Row, int, error) {
	var conditions []string
	var args []interface{}
	argCount := 0

	if req.Category != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argCount))
		args = append(args, req.Category)
	}
	if req.Genre != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM title_genres tg
			JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = $%d)`, argCount))
		args = append(args, req.Genre)
	}
	if req.Name != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf("t.name ILIKE $%d", argCount))
		args = append(args, "%"+req.Name+"%")
	}
	if req.Year != 0 {
		argCount++
		conditions = append(conditions, fmt.Sprintf("t.year = $%d", argCount))
		args = append(args, req.Year)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
		%s`, whereClause)

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count titles: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
		%s
		ORDER BY t.name
		LIMIT $%d OFFSET $%d`, rowColumns, whereClause, argCount+1, argCount+2)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list titles: %w", err)
	}
	defer rows.Close()

	var result []*title.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan title: %w", err)
		}
		result = append(result, row)
	}
	return result, total, rows.Err()
}

func (r *titleRepository) Update(ctx context.Context, t *title.Title, genreIDs *[]uuid.UUID) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE titles
			SET name = $2, year = $3, description = $4, category_id = $5
			WHERE id = $1`

		tag, err := tx.Exec(ctx, query, t.ID, t.Name, t.Year, t.Description, t.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to update title: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return title.ErrTitleNotFound
		}

		if genreIDs == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, t.ID); err != nil {
			return fmt.Errorf("failed to clear genre links: %w", err)
		}
		return insertGenreLinks(ctx, tx, t.ID, *genreIDs)
	})
}

func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return title.ErrTitleNotFound
	}
	return nil
}

func (r *titleRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM titles WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check title existence: %w", err)
	}
	return exists, nil
}

func insertGenreLinks(ctx context.Context, tx pgx.Tx, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	for _, genreID := range genreIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			titleID, genreID)
		if err != nil {
			return fmt.Errorf("failed to link genre: %w", err)
		}
	}
	return nil
}

func scanRow(row pgx.Row) (*title.Row, error) {
	var tr title.Row
	err := row.Scan(
		&tr.Title.ID, &tr.Title.Name, &tr.Title.Year, &tr.Title.Description,
		&tr.Title.CategoryID, &tr.Title.CreatedAt,
		&tr.CategorySlug, &tr.CategoryName,
		&tr.Rating,
		pq.Array(&tr.GenreSlugs), pq.Array(&tr.GenreNames),
	)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}
