package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"reviewhub-backend/internal/domains/review"
)

type reviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, rev *review.Review) error {
	query := `
		INSERT INTO reviews (id, title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING pub_date`

	err := r.db.QueryRow(ctx, query, rev.ID, rev.TitleID, rev.AuthorID, rev.Text, rev.Score).
		Scan(&rev.PubDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "one_review_per_title" {
			return review.ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*review.ReviewRow, error) {
	query := `
		SELECT r.id, r.title_id, r.author_id, r.text, r.score, r.pub_date, u.username
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1 AND r.title_id = $2`

	var row review.ReviewRow
	err := r.db.QueryRow(ctx, query, reviewID, titleID).Scan(
		&row.ID, &row.TitleID, &row.AuthorID, &row.Text, &row.Score, &row.PubDate,
		&row.AuthorUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &row, nil
}

func (r *reviewRepository) ListReviews(ctx context.Context, titleID uuid.UUID, req review.ListRequest) ([]*review.ReviewRow, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE title_id = $1`, titleID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `
		SELECT r.id, r.title_id, r.author_id, r.text, r.score, r.pub_date, u.username
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, titleID, req.Limit, req.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var result []*review.ReviewRow
	for rows.Next() {
		var row review.ReviewRow
		err := rows.Scan(
			&row.ID, &row.TitleID, &row.AuthorID, &row.Text, &row.Score, &row.PubDate,
			&row.AuthorUsername,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		result = append(result, &row)
	}
	return result, total, rows.Err()
}

func (r *reviewRepository) UpdateReview(ctx context.Context, rev *review.Review) error {
	query := `
		UPDATE reviews
		SET text = $3, score = $4
		WHERE id = $1 AND title_id = $2`

	tag, err := r.db.Exec(ctx, query, rev.ID, rev.TitleID, rev.Text, rev.Score)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) DeleteReview(ctx context.Context, titleID, reviewID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND title_id = $2`, reviewID, titleID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) CreateComment(ctx context.Context, cmt *review.Comment) error {
	query := `
		INSERT INTO comments (id, review_id, author_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING pub_date`

	err := r.db.QueryRow(ctx, query, cmt.ID, cmt.ReviewID, cmt.AuthorID, cmt.Text).
		Scan(&cmt.PubDate)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *reviewRepository) GetComment(ctx context.Context, reviewID, commentID uuid.UUID) (*review.CommentRow, error) {
	query := `
		SELECT c.id, c.review_id, c.author_id, c.text, c.pub_date, u.username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 AND c.review_id = $2`

	var row review.CommentRow
	err := r.db.QueryRow(ctx, query, commentID, reviewID).Scan(
		&row.ID, &row.ReviewID, &row.AuthorID, &row.Text, &row.PubDate,
		&row.AuthorUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, review.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &row, nil
}

func (r *reviewRepository) ListComments(ctx context.Context, reviewID uuid.UUID, req review.ListRequest) ([]*review.CommentRow, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE review_id = $1`, reviewID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `
		SELECT c.id, c.review_id, c.author_id, c.text, c.pub_date, u.username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY c.pub_date ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, reviewID, req.Limit, req.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var result []*review.CommentRow
	for rows.Next() {
		var row review.CommentRow
		err := rows.Scan(
			&row.ID, &row.ReviewID, &row.AuthorID, &row.Text, &row.PubDate,
			&row.AuthorUsername,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, &row)
	}
	return result, total, rows.Err()
}

func (r *reviewRepository) UpdateComment(ctx context.Context, cmt *review.Comment) error {
	query := `
		UPDATE comments
		SET text = $3
		WHERE id = $1 AND review_id = $2`

	tag, err := r.db.Exec(ctx, query, cmt.ID, cmt.ReviewID, cmt.Text)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return review.ErrCommentNotFound
	}
	return nil
}

func (r *reviewRepository) DeleteComment(ctx context.Context, reviewID, commentID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND review_id = $2`, commentID, reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return review.ErrCommentNotFound
	}
	return nil
}
