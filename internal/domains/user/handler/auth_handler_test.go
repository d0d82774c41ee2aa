package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub-backend/internal/domains/user"
	"reviewhub-backend/internal/shared/authz"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserService stubs the signup surface.
type fakeUserService struct {
	signupResp  *user.SignupResponse
	signupErr   error
	confirmResp *user.TokenResponse
	confirmErr  error
}

func (f *fakeUserService) Signup(ctx context.Context, req user.SignupRequest) (*user.SignupResponse, error) {
	return f.signupResp, f.signupErr
}

func (f *fakeUserService) Confirm(ctx context.Context, req user.ConfirmationRequest) (*user.TokenResponse, error) {
	return f.confirmResp, f.confirmErr
}

func (f *fakeUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, actorRole authz.Role, req user.UpdateUserRequest) (*user.UserDTO, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) ListUsers(ctx context.Context, req user.ListUsersRequest) ([]user.UserDTO, int, error) {
	return nil, 0, nil
}

func (f *fakeUserService) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.UserDTO, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) GetByUsername(ctx context.Context, username string) (*user.UserDTO, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) UpdateByUsername(ctx context.Context, username string, req user.UpdateUserRequest) (*user.UserDTO, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) DeleteByUsername(ctx context.Context, username string) error {
	return user.ErrUserNotFound
}

func performSignup(svc user.Service, body interface{}) *httptest.ResponseRecorder {
	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/auth/signup", h.Signup)

	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupEndpointSuccess(t *testing.T) {
	svc := &fakeUserService{
		signupResp: &user.SignupResponse{Username: "alice", Email: "alice@example.com"},
	}

	w := performSignup(svc, gin.H{"username": "alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    user.SignupResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "alice", resp.Data.Username)
}

func TestSignupEndpointConflictMapsToBadRequest(t *testing.T) {
	svc := &fakeUserService{signupErr: user.ErrUsernameTaken}

	w := performSignup(svc, gin.H{"username": "alice", "email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupEndpointEmailFailureMapsToBadGateway(t *testing.T) {
	svc := &fakeUserService{signupErr: user.ErrEmailDelivery}

	w := performSignup(svc, gin.H{"username": "alice", "email": "alice@example.com"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSignupEndpointRejectsMalformedBody(t *testing.T) {
	svc := &fakeUserService{}

	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/auth/signup", h.Signup)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenEndpointSuccess(t *testing.T) {
	svc := &fakeUserService{confirmResp: &user.TokenResponse{Token: "jwt-token"}}

	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/auth/token", h.Token)

	payload, _ := json.Marshal(gin.H{"username": "alice", "confirmation_code": "abc123"})
	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jwt-token")
}

func TestTokenEndpointInvalidCode(t *testing.T) {
	svc := &fakeUserService{confirmErr: user.ErrInvalidCode}

	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/auth/token", h.Token)

	payload, _ := json.Marshal(gin.H{"username": "alice", "confirmation_code": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
