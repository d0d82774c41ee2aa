package catalog

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type CreateEntityRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

func (r CreateEntityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 256),
		),
		validation.Field(&r.Slug,
			validation.Required.Error("slug is required"),
			validation.Length(1, 50),
			validation.Match(slugPattern).Error("slug may contain only letters, digits, hyphens and underscores"),
		),
	)
}

// EntityDTO is the public shape; ids stay internal, slugs are the key.
type EntityDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ListRequest struct {
	Search string `form:"search"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

func (r *ListRequest) SetDefaults() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}
