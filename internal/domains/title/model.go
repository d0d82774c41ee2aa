package title

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Title is a reviewable creative work. Rating is never stored: it is
// computed at read time as the average review score.
type Title struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
	CreatedAt   time.Time  `db:"created_at"`
}

// CacheKey is the redis key holding a title's rendered read model.
// Review writes invalidate it.
func CacheKey(id uuid.UUID) string {
	return fmt.Sprintf("title:%s", id)
}
