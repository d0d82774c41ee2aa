package user

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"reviewhub-backend/internal/shared/authz"
)

// usernamePattern mirrors the account store contract: word characters
// plus ".", "@", "+", "-".
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ========================================
// AUTH DTOs
// ========================================

// SignupRequest starts self-registration. No password: the account stays
// inactive until the emailed confirmation code is exchanged.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 150),
			validation.Match(usernamePattern).Error("username may contain only letters, digits and . @ + - _"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(3, 254),
		),
	)
}

// SignupResponse echoes what was submitted, never the code itself.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ConfirmationRequest exchanges an emailed code for a session token.
type ConfirmationRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

func (r ConfirmationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.ConfirmationCode, validation.Required),
	)
}

type TokenResponse struct {
	Token string `json:"token"`
}

// ========================================
// PROFILE / ADMIN DTOs
// ========================================

type UserDTO struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      authz.Role `json:"role"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio"`
}

// UpdateUserRequest is a partial update. Pointer fields distinguish
// "absent" from "set to empty". Role changes by non-admin actors are
// dropped silently, not rejected.
type UpdateUserRequest struct {
	Username  *string     `json:"username,omitempty"`
	Email     *string     `json:"email,omitempty"`
	FirstName *string     `json:"first_name,omitempty"`
	LastName  *string     `json:"last_name,omitempty"`
	Bio       *string     `json:"bio,omitempty"`
	Role      *authz.Role `json:"role,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.NilOrNotEmpty,
			validation.Length(1, 150),
			validation.Match(usernamePattern).Error("username may contain only letters, digits and . @ + - _"),
		),
		validation.Field(&r.Email,
			validation.NilOrNotEmpty,
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.FirstName, validation.Length(0, 150)),
		validation.Field(&r.LastName, validation.Length(0, 150)),
		validation.Field(&r.Role, validation.By(validRole)),
	)
}

// CreateUserRequest is the admin-only account creation path. These
// accounts are considered vetted and start active; a password is
// optional and stored bcrypt-hashed when present.
type CreateUserRequest struct {
	Username  string     `json:"username" binding:"required"`
	Email     string     `json:"email" binding:"required"`
	Role      authz.Role `json:"role,omitempty"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Password  string     `json:"password,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 150),
			validation.Match(usernamePattern).Error("username may contain only letters, digits and . @ + - _"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Role, validation.By(validRole)),
		validation.Field(&r.Password, validation.When(r.Password != "", validation.Length(8, 128))),
	)
}

// ListUsersRequest is the admin listing surface: username search plus
// limit/offset pagination.
type ListUsersRequest struct {
	Search string `form:"search"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

func (r *ListUsersRequest) SetDefaults() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

func validRole(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case authz.Role:
		if v == "" || v.IsValid() {
			return nil
		}
	case *authz.Role:
		if v == nil || v.IsValid() {
			return nil
		}
	}
	return ErrInvalidRole
}
