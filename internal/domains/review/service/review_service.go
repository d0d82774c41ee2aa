package service

import (
	"context"

	"github.com/google/uuid"

	"reviewhub-backend/internal/domains/review"
	"reviewhub-backend/internal/domains/title"
	"reviewhub-backend/internal/shared/authz"
	"reviewhub-backend/pkg/cache"
	"reviewhub-backend/pkg/logger"
)

type reviewService struct {
	repo   review.Repository
	titles title.Repository
	cache  cache.Cache
}

func NewReviewService(repo review.Repository, titles title.Repository, c cache.Cache) review.Service {
	return &reviewService{repo: repo, titles: titles, cache: c}
}

func (s *reviewService) CreateReview(ctx context.Context, titleID uuid.UUID, actor review.Actor, req review.CreateReviewRequest) (*review.ReviewDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	rev := &review.Review{
		ID:       uuid.New(),
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.repo.CreateReview(ctx, rev); err != nil {
		return nil, err
	}

	// A new score changes the title's average.
	s.invalidateTitle(ctx, titleID)
	return s.toReviewDTO(ctx, titleID, rev.ID)
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*review.ReviewDTO, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return s.toReviewDTO(ctx, titleID, reviewID)
}

func (s *reviewService) ListReviews(ctx context.Context, titleID uuid.UUID, req review.ListRequest) ([]review.ReviewDTO, int, error) {
	req.SetDefaults()
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}

	rows, total, err := s.repo.ListReviews(ctx, titleID, req)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]review.ReviewDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, reviewRowToDTO(row))
	}
	return dtos, total, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, titleID, reviewID uuid.UUID, actor review.Actor, req review.UpdateReviewRequest) (*review.ReviewDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if authz.Decide(actor.Role, actor.ID, authz.ActionMutateContent, &row.AuthorID) != authz.Allow {
		return nil, review.ErrForbidden
	}

	rev := row.Review
	if req.Text != nil {
		rev.Text = *req.Text
	}
	if req.Score != nil {
		rev.Score = *req.Score
	}
	if err := s.repo.UpdateReview(ctx, &rev); err != nil {
		return nil, err
	}

	if req.Score != nil {
		s.invalidateTitle(ctx, titleID)
	}
	return s.toReviewDTO(ctx, titleID, reviewID)
}

func (s *reviewService) DeleteReview(ctx context.Context, titleID, reviewID uuid.UUID, actor review.Actor) error {
	row, err := s.repo.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if authz.Decide(actor.Role, actor.ID, authz.ActionMutateContent, &row.AuthorID) != authz.Allow {
		return review.ErrForbidden
	}

	if err := s.repo.DeleteReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	s.invalidateTitle(ctx, titleID)
	return nil
}

func (s *reviewService) CreateComment(ctx context.Context, titleID, reviewID uuid.UUID, actor review.Actor, req review.CreateCommentRequest) (*review.CommentDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	cmt := &review.Comment{
		ID:       uuid.New(),
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.repo.CreateComment(ctx, cmt); err != nil {
		return nil, err
	}
	return s.toCommentDTO(ctx, reviewID, cmt.ID)
}

func (s *reviewService) GetComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*review.CommentDTO, error) {
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.toCommentDTO(ctx, reviewID, commentID)
}

func (s *reviewService) ListComments(ctx context.Context, titleID, reviewID uuid.UUID, req review.ListRequest) ([]review.CommentDTO, int, error) {
	req.SetDefaults()
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	rows, total, err := s.repo.ListComments(ctx, reviewID, req)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]review.CommentDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, commentRowToDTO(row))
	}
	return dtos, total, nil
}

func (s *reviewService) UpdateComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID, actor review.Actor, req review.UpdateCommentRequest) (*review.CommentDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if authz.Decide(actor.Role, actor.ID, authz.ActionMutateContent, &row.AuthorID) != authz.Allow {
		return nil, review.ErrForbidden
	}

	cmt := row.Comment
	cmt.Text = req.Text
	if err := s.repo.UpdateComment(ctx, &cmt); err != nil {
		return nil, err
	}
	return s.toCommentDTO(ctx, reviewID, commentID)
}

func (s *reviewService) DeleteComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID, actor review.Actor) error {
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return err
	}

	row, err := s.repo.GetComment(ctx, reviewID, commentID)
	if err != nil {
		return err
	}
	if authz.Decide(actor.Role, actor.ID, authz.ActionMutateContent, &row.AuthorID) != authz.Allow {
		return review.ErrForbidden
	}
	return s.repo.DeleteComment(ctx, reviewID, commentID)
}

func (s *reviewService) requireTitle(ctx context.Context, titleID uuid.UUID) error {
	exists, err := s.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return title.ErrTitleNotFound
	}
	return nil
}

func (s *reviewService) invalidateTitle(ctx context.Context, titleID uuid.UUID) {
	if err := s.cache.Delete(ctx, title.CacheKey(titleID)); err != nil {
		logger.Warn("title cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *reviewService) toReviewDTO(ctx context.Context, titleID, reviewID uuid.UUID) (*review.ReviewDTO, error) {
	row, err := s.repo.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	dto := reviewRowToDTO(row)
	return &dto, nil
}

func (s *reviewService) toCommentDTO(ctx context.Context, reviewID, commentID uuid.UUID) (*review.CommentDTO, error) {
	row, err := s.repo.GetComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	dto := commentRowToDTO(row)
	return &dto, nil
}

func reviewRowToDTO(row *review.ReviewRow) review.ReviewDTO {
	return review.ReviewDTO{
		ID:      row.ID,
		Author:  row.AuthorUsername,
		Text:    row.Text,
		Score:   row.Score,
		PubDate: row.PubDate,
	}
}

func commentRowToDTO(row *review.CommentRow) review.CommentDTO {
	return review.CommentDTO{
		ID:      row.ID,
		Author:  row.AuthorUsername,
		Text:    row.Text,
		PubDate: row.PubDate,
	}
}
