package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub-backend/internal/domains/user"
	"reviewhub-backend/internal/domains/user/token"
	"reviewhub-backend/internal/infrastructure/email"
	"reviewhub-backend/internal/shared/authz"
	"reviewhub-backend/pkg/jwt"
)

// fakeUserRepo is an in-memory user.Repository.
type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsernameEmail(ctx context.Context, username, emailAddr string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.Email == emailAddr {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.FindByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, emailAddr string) (bool, error) {
	for _, u := range f.users {
		if u.Email == emailAddr {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Activate(ctx context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = true
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, req user.ListUsersRequest) ([]*user.User, int, error) {
	var all []*user.User
	for _, u := range f.users {
		cp := *u
		all = append(all, &cp)
	}
	return all, len(all), nil
}

func (f *fakeUserRepo) PurgeInactive(ctx context.Context, olderThan time.Time) (int, error) {
	purged := 0
	for id, u := range f.users {
		if !u.IsActive && u.CreatedAt.Before(olderThan) {
			delete(f.users, id)
			purged++
		}
	}
	return purged, nil
}

// fakeMailer records sent confirmation emails.
type fakeMailer struct {
	sent []email.ConfirmationEmailData
	err  error
}

func (f *fakeMailer) SendConfirmationEmail(ctx context.Context, data email.ConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func newTestService(repo user.Repository, mailer email.EmailService) user.Service {
	codes := token.NewGenerator("test-secret", 24*time.Hour)
	manager := jwt.NewManager("jwt-secret", time.Hour)
	return NewUserService(repo, codes, mailer, manager)
}

func TestSignupCreatesInactiveAccountAndSendsCode(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	resp, err := svc.Signup(context.Background(), user.SignupRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email, "email should be normalized to lower case")

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].Email)
	assert.NotEmpty(t, mailer.sent[0].Code)

	stored, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, authz.RoleUser, stored.Role)
	assert.Nil(t, stored.PasswordHash)
}

func TestSignupSamePairIsIdempotentResend(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)
	req := user.SignupRequest{Username: "alice", Email: "alice@example.com"}

	_, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, mailer.sent[0].Code, mailer.sent[1].Code,
		"resend within the same window must carry the same code")
	assert.Len(t, repo.users, 1, "resend must not create a second account")
}

func TestSignupUsernameCollision(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	_, err := svc.Signup(context.Background(), user.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), user.SignupRequest{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, user.ErrUsernameTaken)
}

func TestSignupEmailCollision(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	_, err := svc.Signup(context.Background(), user.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), user.SignupRequest{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestSignupRejectsReservedUsername(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakeMailer{})

	_, err := svc.Signup(context.Background(), user.SignupRequest{Username: "me", Email: "me@example.com"})
	assert.ErrorIs(t, err, user.ErrReservedUsername)
}

func TestSignupEmailFailureAbortsRequest(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := newTestService(repo, mailer)

	_, err := svc.Signup(context.Background(), user.SignupRequest{Username: "alice", Email: "alice@example.com"})
	assert.ErrorIs(t, err, user.ErrEmailDelivery)
}

func TestConfirmActivatesAndReturnsToken(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	_, err := svc.Signup(context.Background(), user.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	code := mailer.sent[0].Code

	resp, err := svc.Confirm(context.Background(), user.ConfirmationRequest{
		Username:         "alice",
		ConfirmationCode: code,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	stored, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestConfirmRejectsWrongCode(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	_, err := svc.Signup(context.Background(), user.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), user.ConfirmationRequest{
		Username:         "alice",
		ConfirmationCode: "00000000000000000000000000000000",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCode)

	stored, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, stored.IsActive, "failed confirmation must not activate")
}

func TestConfirmUnknownUser(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakeMailer{})

	_, err := svc.Confirm(context.Background(), user.ConfirmationRequest{
		Username:         "ghost",
		ConfirmationCode: "whatever",
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestConfirmCodeInvalidAfterActivation(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	_, err := svc.Signup(context.Background(), user.SignupRequest{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	code := mailer.sent[0].Code

	_, err = svc.Confirm(context.Background(), user.ConfirmationRequest{Username: "alice", ConfirmationCode: code})
	require.NoError(t, err)

	// The old code was derived from the inactive state, which no longer
	// matches.
	_, err = svc.Confirm(context.Background(), user.ConfirmationRequest{Username: "alice", ConfirmationCode: code})
	assert.ErrorIs(t, err, user.ErrInvalidCode)
}

func TestUpdateProfileIgnoresRoleForNonAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, &fakeMailer{})

	id := uuid.New()
	repo.users[id] = &user.User{ID: id, Username: "alice", Email: "alice@example.com", Role: authz.RoleUser, IsActive: true}

	admin := authz.RoleAdmin
	bio := "hello"
	dto, err := svc.UpdateProfile(context.Background(), id, authz.RoleUser, user.UpdateUserRequest{
		Bio:  &bio,
		Role: &admin,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello", dto.Bio)
	assert.Equal(t, authz.RoleUser, dto.Role, "non-admin actors cannot change roles")
}

func TestUpdateProfileHonorsRoleForAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, &fakeMailer{})

	id := uuid.New()
	repo.users[id] = &user.User{ID: id, Username: "alice", Email: "alice@example.com", Role: authz.RoleUser, IsActive: true}

	moderator := authz.RoleModerator
	dto, err := svc.UpdateProfile(context.Background(), id, authz.RoleAdmin, user.UpdateUserRequest{
		Role: &moderator,
	})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleModerator, dto.Role)
}

func TestCreateUserStartsActive(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, &fakeMailer{})

	dto, err := svc.CreateUser(context.Background(), user.CreateUserRequest{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     authz.RoleModerator,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleModerator, dto.Role)

	stored, err := repo.FindByUsername(context.Background(), "mod")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", *stored.PasswordHash)
}
