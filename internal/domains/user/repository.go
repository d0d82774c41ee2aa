package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the account store. Uniqueness of username and email is
// enforced by database constraints; implementations translate constraint
// violations to ErrUsernameTaken / ErrEmailTaken so that the loser of a
// concurrent signup race gets a conflict, not a 500.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// FindByUsernameEmail matches the exact (username, email) pair; used
	// by the idempotent re-signup path.
	FindByUsernameEmail(ctx context.Context, username, email string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *User) error
	// Activate flips is_active; activation is one-way.
	Activate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req ListUsersRequest) ([]*User, int, error)
	// PurgeInactive deletes accounts that never activated and are older
	// than the cutoff. Returns the number of rows removed.
	PurgeInactive(ctx context.Context, olderThan time.Time) (int, error)
}
