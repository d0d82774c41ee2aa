package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRow and CommentRow carry the author username resolved by join.
type ReviewRow struct {
	Review
	AuthorUsername string
}

type CommentRow struct {
	Comment
	AuthorUsername string
}

type Repository interface {
	CreateReview(ctx context.Context, rev *Review) error
	// GetReview is scoped to a title: a review id under the wrong title
	// is not found.
	GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*ReviewRow, error)
	ListReviews(ctx context.Context, titleID uuid.UUID, req ListRequest) ([]*ReviewRow, int, error)
	UpdateReview(ctx context.Context, rev *Review) error
	DeleteReview(ctx context.Context, titleID, reviewID uuid.UUID) error

	CreateComment(ctx context.Context, cmt *Comment) error
	GetComment(ctx context.Context, reviewID, commentID uuid.UUID) (*CommentRow, error)
	ListComments(ctx context.Context, reviewID uuid.UUID, req ListRequest) ([]*CommentRow, int, error)
	UpdateComment(ctx context.Context, cmt *Comment) error
	DeleteComment(ctx context.Context, reviewID, commentID uuid.UUID) error
}
