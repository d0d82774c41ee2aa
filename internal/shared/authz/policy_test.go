package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	actor := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		role    Role
		actorID uuid.UUID
		action  Action
		ownerID *uuid.UUID
		want    Decision
	}{
		{"anonymous reads catalog", RoleUser, Anonymous, ActionReadCatalog, nil, Allow},
		{"anonymous reads content", RoleUser, Anonymous, ActionReadContent, nil, Allow},
		{"anonymous cannot post", RoleUser, Anonymous, ActionCreateContent, nil, Deny},
		{"anonymous cannot self-profile", RoleUser, Anonymous, ActionSelfProfile, nil, Deny},
		{"anonymous cannot mutate own content", RoleUser, Anonymous, ActionMutateContent, &actor, Deny},

		{"user posts content", RoleUser, actor, ActionCreateContent, nil, Allow},
		{"user reads own profile", RoleUser, actor, ActionSelfProfile, nil, Allow},
		{"user mutates own content", RoleUser, actor, ActionMutateContent, &actor, Allow},
		{"user cannot mutate others content", RoleUser, actor, ActionMutateContent, &other, Deny},
		{"user cannot mutate catalog", RoleUser, actor, ActionMutateCatalog, nil, Deny},
		{"user cannot administer accounts", RoleUser, actor, ActionAdministerAccounts, nil, Deny},

		{"moderator mutates others content", RoleModerator, actor, ActionMutateContent, &other, Allow},
		{"moderator cannot mutate catalog", RoleModerator, actor, ActionMutateCatalog, nil, Deny},
		{"moderator cannot administer accounts", RoleModerator, actor, ActionAdministerAccounts, nil, Deny},

		{"admin mutates catalog", RoleAdmin, actor, ActionMutateCatalog, nil, Allow},
		{"admin mutates others content", RoleAdmin, actor, ActionMutateContent, &other, Allow},
		{"admin administers accounts", RoleAdmin, actor, ActionAdministerAccounts, nil, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.role, tt.actorID, tt.action, tt.ownerID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, r.IsValid(), r.String())
	}
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestCanAssignRole(t *testing.T) {
	assert.True(t, CanAssignRole(RoleAdmin))
	assert.False(t, CanAssignRole(RoleModerator))
	assert.False(t, CanAssignRole(RoleUser))
}
