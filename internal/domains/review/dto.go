package review

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("text is required")),
		validation.Field(&r.Score,
			validation.Required.Error("score is required"),
			validation.Min(1).Error("score must be between 1 and 10"),
			validation.Max(10).Error("score must be between 1 and 10"),
		),
	)
}

// UpdateReviewRequest is a partial update; nil fields stay untouched.
type UpdateReviewRequest struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.NilOrNotEmpty),
		validation.Field(&r.Score,
			validation.Min(1).Error("score must be between 1 and 10"),
			validation.Max(10).Error("score must be between 1 and 10"),
		),
	)
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("text is required")),
	)
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("text is required")),
	)
}

type ReviewDTO struct {
	ID      uuid.UUID `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type CommentDTO struct {
	ID      uuid.UUID `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

type ListRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r *ListRequest) SetDefaults() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}
