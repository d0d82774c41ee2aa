package title

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"reviewhub-backend/internal/domains/catalog"
)

type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category" binding:"required"`
	Genres      []string `json:"genre"`
}

func (r CreateTitleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 256),
		),
		validation.Field(&r.Year,
			validation.Required.Error("year is required"),
			validation.Max(time.Now().Year()).Error("year cannot be in the future"),
		),
		validation.Field(&r.Category, validation.Required.Error("category is required")),
	)
}

// UpdateTitleRequest is a partial update; nil fields stay untouched.
type UpdateTitleRequest struct {
	Name        *string   `json:"name,omitempty"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Genres      *[]string `json:"genre,omitempty"`
}

func (r UpdateTitleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 256)),
		validation.Field(&r.Year, validation.Max(time.Now().Year()).Error("year cannot be in the future")),
		validation.Field(&r.Category, validation.NilOrNotEmpty),
	)
}

// TitleDTO is the read model: catalog references resolved to slugs and
// rating computed from reviews, null when the title has none.
type TitleDTO struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Year        int                 `json:"year"`
	Rating      *float64            `json:"rating"`
	Description string              `json:"description"`
	Category    *catalog.EntityDTO  `json:"category"`
	Genres      []catalog.EntityDTO `json:"genre"`
}

// ListRequest carries the supported title filters.
type ListRequest struct {
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Name     string `form:"name"`
	Year     int    `form:"year"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

func (r *ListRequest) SetDefaults() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}
