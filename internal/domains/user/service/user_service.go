package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reviewhub-backend/internal/domains/user"
	"reviewhub-backend/internal/domains/user/token"
	"reviewhub-backend/internal/infrastructure/email"
	"reviewhub-backend/internal/shared/authz"
	"reviewhub-backend/pkg/jwt"
	"reviewhub-backend/pkg/logger"
)

// reservedUsername is claimed by the /users/me self-service endpoint.
const reservedUsername = "me"

type userService struct {
	repo   user.Repository
	codes  *token.Generator
	mailer email.EmailService
	jwt    *jwt.Manager
}

func NewUserService(repo user.Repository, codes *token.Generator, mailer email.EmailService, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:   repo,
		codes:  codes,
		mailer: mailer,
		jwt:    jwtManager,
	}
}

// ========================================
// SIGNUP / ACTIVATION
// ========================================

// Signup registers an account and emails its confirmation code.
//
// Re-submitting the exact same (username, email) pair is an idempotent
// resend: no new row, no error, just another email with the code for
// the account's current state. A collision on only one of the two keys
// is a conflict, reported per field.
func (s *userService) Signup(ctx context.Context, req user.SignupRequest) (*user.SignupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Username == reservedUsername {
		return nil, user.ErrReservedUsername
	}

	emailAddr := strings.ToLower(req.Email)

	u, err := s.repo.FindByUsernameEmail(ctx, req.Username, emailAddr)
	switch {
	case err == nil:
		// Exact pair exists: resend path, fall through.
	case errors.Is(err, user.ErrUserNotFound):
		u, err = s.registerNewAccount(ctx, req.Username, emailAddr)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	code := s.codes.Issue(token.AccountSnapshot{ID: u.ID, Active: u.IsActive})

	// Delivery is synchronous and fail-loud: without the email the
	// account is unreachable, so the caller must know.
	if err := s.mailer.SendConfirmationEmail(ctx, emailData(u, code)); err != nil {
		logger.Error("confirmation email delivery failed", err)
		return nil, user.ErrEmailDelivery
	}

	return &user.SignupResponse{Username: u.Username, Email: u.Email}, nil
}

func (s *userService) registerNewAccount(ctx context.Context, username, emailAddr string) (*user.User, error) {
	if exists, err := s.repo.ExistsByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if exists {
		return nil, user.ErrUsernameTaken
	}

	if exists, err := s.repo.ExistsByEmail(ctx, emailAddr); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if exists {
		return nil, user.ErrEmailTaken
	}

	now := time.Now()
	u := &user.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     emailAddr,
		Role:      authz.RoleUser,
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The pre-checks above race with concurrent signups; the unique
	// constraints are the authority and already map to the same errors.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Confirm verifies a confirmation code, activates the account and
// returns a session token. Confirming an already-active account is a
// no-op success: the code derived from the active state still verifies.
func (s *userService) Confirm(ctx context.Context, req user.ConfirmationRequest) (*user.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	snapshot := token.AccountSnapshot{ID: u.ID, Active: u.IsActive}
	if !s.codes.Verify(snapshot, req.ConfirmationCode) {
		return nil, user.ErrInvalidCode
	}

	if !u.IsActive {
		if err := s.repo.Activate(ctx, u.ID); err != nil {
			return nil, fmt.Errorf("activate account: %w", err)
		}
	}

	accessToken, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Username, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.TokenResponse{Token: accessToken}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// UpdateProfile applies a partial self-update. The role field is only
// honored for admin actors; for everyone else the update proceeds with
// the stored role untouched.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, actorRole authz.Role, req user.UpdateUserRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !authz.CanAssignRole(actorRole) {
		req.Role = nil
	}

	return s.applyUpdate(ctx, u, req)
}

// ========================================
// ADMIN
// ========================================

func (s *userService) ListUsers(ctx context.Context, req user.ListUsersRequest) ([]user.UserDTO, int, error) {
	req.SetDefaults()

	users, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	dtos := make([]user.UserDTO, len(users))
	for i, u := range users {
		dtos[i] = u.ToDTO()
	}

	return dtos, total, nil
}

// CreateUser is the admin path: the account starts active and may carry
// a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Username == reservedUsername {
		return nil, user.ErrReservedUsername
	}

	role := req.Role
	if role == "" {
		role = authz.RoleUser
	}

	var passwordHash *string
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		h := string(hash)
		passwordHash = &h
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		Role:         role,
		IsActive:     true,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*user.UserDTO, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateByUsername(ctx context.Context, username string, req user.UpdateUserRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, u, req)
}

func (s *userService) DeleteByUsername(ctx context.Context, username string) error {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, u.ID)
}

func (s *userService) applyUpdate(ctx context.Context, u *user.User, req user.UpdateUserRequest) (*user.UserDTO, error) {
	if req.Username != nil {
		if *req.Username == reservedUsername {
			return nil, user.ErrReservedUsername
		}
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = strings.ToLower(*req.Email)
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Role != nil {
		u.Role = *req.Role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func emailData(u *user.User, code string) email.ConfirmationEmailData {
	return email.ConfirmationEmailData{
		Email:    u.Email,
		Username: u.Username,
		Code:     code,
	}
}
