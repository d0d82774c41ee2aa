package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub-backend/internal/shared/authz"
)

func TestSignupRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     SignupRequest
		wantErr bool
	}{
		{"valid", SignupRequest{Username: "alice", Email: "alice@example.com"}, false},
		{"valid with symbols", SignupRequest{Username: "a.b@c+d-e_f", Email: "x@example.com"}, false},
		{"missing username", SignupRequest{Email: "alice@example.com"}, true},
		{"missing email", SignupRequest{Username: "alice"}, true},
		{"bad email", SignupRequest{Username: "alice", Email: "not-an-email"}, true},
		{"illegal username chars", SignupRequest{Username: "alice smith", Email: "alice@example.com"}, true},
		{"username too long", SignupRequest{Username: strings.Repeat("a", 151), Email: "alice@example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateUserRequestValidation(t *testing.T) {
	bad := authz.Role("superuser")
	good := authz.RoleModerator
	empty := ""

	assert.NoError(t, UpdateUserRequest{}.Validate(), "all-nil partial update is valid")
	assert.NoError(t, UpdateUserRequest{Role: &good}.Validate())
	assert.Error(t, UpdateUserRequest{Role: &bad}.Validate())
	assert.Error(t, UpdateUserRequest{Username: &empty}.Validate())
}

func TestCreateUserRequestValidation(t *testing.T) {
	valid := CreateUserRequest{Username: "mod", Email: "mod@example.com", Role: authz.RoleModerator}
	assert.NoError(t, valid.Validate())

	invalidRole := CreateUserRequest{Username: "mod", Email: "mod@example.com", Role: authz.Role("root")}
	assert.Error(t, invalidRole.Validate())
}
