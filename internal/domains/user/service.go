package user

import (
	"context"

	"github.com/google/uuid"

	"reviewhub-backend/internal/shared/authz"
)

// Service is the signup/activation flow plus the profile and admin
// account surfaces.
type Service interface {
	// Signup registers or re-registers an inactive account and emails a
	// confirmation code. Identical (username, email) re-submission is an
	// idempotent resend.
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	// Confirm exchanges a confirmation code for a session token,
	// activating the account on first use.
	Confirm(ctx context.Context, req ConfirmationRequest) (*TokenResponse, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	// UpdateProfile applies a partial self-update. A role change is
	// silently dropped unless actorRole is admin.
	UpdateProfile(ctx context.Context, userID uuid.UUID, actorRole authz.Role, req UpdateUserRequest) (*UserDTO, error)

	// Admin surface.
	ListUsers(ctx context.Context, req ListUsersRequest) ([]UserDTO, int, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error)
	GetByUsername(ctx context.Context, username string) (*UserDTO, error)
	UpdateByUsername(ctx context.Context, username string, req UpdateUserRequest) (*UserDTO, error)
	DeleteByUsername(ctx context.Context, username string) error
}
