// Package review holds user-authored content: reviews scored 1-10
// against a title, and comments threaded under a review. A user gets
// one review per title; the database constraint is the authority.
package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID       uuid.UUID `db:"id"`
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	Score    int       `db:"score"`
	PubDate  time.Time `db:"pub_date"`
}

type Comment struct {
	ID       uuid.UUID `db:"id"`
	ReviewID uuid.UUID `db:"review_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	PubDate  time.Time `db:"pub_date"`
}
