package review

import (
	"context"

	"github.com/google/uuid"

	"reviewhub-backend/internal/shared/authz"
)

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	ID   uuid.UUID
	Role authz.Role
}

type Service interface {
	CreateReview(ctx context.Context, titleID uuid.UUID, actor Actor, req CreateReviewRequest) (*ReviewDTO, error)
	GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*ReviewDTO, error)
	ListReviews(ctx context.Context, titleID uuid.UUID, req ListRequest) ([]ReviewDTO, int, error)
	UpdateReview(ctx context.Context, titleID, reviewID uuid.UUID, actor Actor, req UpdateReviewRequest) (*ReviewDTO, error)
	DeleteReview(ctx context.Context, titleID, reviewID uuid.UUID, actor Actor) error

	CreateComment(ctx context.Context, titleID, reviewID uuid.UUID, actor Actor, req CreateCommentRequest) (*CommentDTO, error)
	GetComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*CommentDTO, error)
	ListComments(ctx context.Context, titleID, reviewID uuid.UUID, req ListRequest) ([]CommentDTO, int, error)
	UpdateComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID, actor Actor, req UpdateCommentRequest) (*CommentDTO, error)
	DeleteComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID, actor Actor) error
}
