// Package catalog holds the two flat reference entities, categories and
// genres. They share one shape (name + unique slug) and one CRUD
// implementation parameterized by table; the API exposes them as two
// resources.
package catalog

import "github.com/google/uuid"

// Entity is a category or genre row.
type Entity struct {
	ID   uuid.UUID `db:"id" json:"-"`
	Name string    `db:"name" json:"name"`
	Slug string    `db:"slug" json:"slug"`
}

// Kind names the concrete resource, used for routing and error text.
type Kind string

const (
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
)

// Table returns the backing table for a kind.
func (k Kind) Table() string {
	switch k {
	case KindCategory:
		return "categories"
	case KindGenre:
		return "genres"
	}
	return ""
}
