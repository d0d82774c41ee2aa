package user

import (
	"time"

	"github.com/google/uuid"

	"reviewhub-backend/internal/shared/authz"
)

// User is the account entity, mapped 1:1 to the users table.
// Accounts created through signup start inactive and without a password;
// only the confirmation-code exchange activates them.
type User struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`
	Email    string    `db:"email" json:"email"`

	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Bio       string `db:"bio" json:"bio"`

	Role     authz.Role `db:"role" json:"role"`
	IsActive bool       `db:"is_active" json:"is_active"`

	// Nil for signup-created accounts. Never exposed in JSON.
	PasswordHash *string `db:"password_hash" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ToDTO strips persistence-only fields for API responses.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
	}
}
