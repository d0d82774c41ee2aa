// Package authz holds the role model and the pure authorization policy.
// Handlers and middleware never hard-code role checks; they ask Decide.
package authz

import "github.com/google/uuid"

// Role is the authorization tier of an account.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func AllRoles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdmin}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Action is a coarse capability the caller asks for.
type Action int

const (
	// ActionReadCatalog covers list/retrieve of categories, genres and
	// titles; ActionReadContent covers reviews and comments. Both are
	// open to anonymous callers.
	ActionReadCatalog Action = iota
	ActionReadContent

	// ActionMutateCatalog is create/update/delete of categories, genres
	// and titles.
	ActionMutateCatalog

	// ActionCreateContent is posting a review or comment.
	ActionCreateContent

	// ActionMutateContent is update/delete of a review or comment;
	// ownerID identifies its author.
	ActionMutateContent

	// ActionSelfProfile is read/update of the caller's own account.
	ActionSelfProfile

	// ActionAdministerAccounts is the full users surface: list, create,
	// retrieve, update and delete arbitrary accounts, including role changes.
	ActionAdministerAccounts
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

// Anonymous is the actor id of an unauthenticated caller.
var Anonymous = uuid.Nil

// Decide maps (role, actor, action, resource owner) to a decision.
// Rules are evaluated in order; the first match wins. An anonymous
// caller carries Anonymous as actorID and RoleUser is irrelevant for it:
// anonymous can only read.
func Decide(role Role, actorID uuid.UUID, action Action, ownerID *uuid.UUID) Decision {
	switch action {
	case ActionReadCatalog, ActionReadContent:
		return Allow

	case ActionSelfProfile:
		if actorID != Anonymous {
			return Allow
		}
		return Deny

	case ActionMutateCatalog:
		if role == RoleAdmin && actorID != Anonymous {
			return Allow
		}
		return Deny

	case ActionCreateContent:
		if actorID != Anonymous {
			return Allow
		}
		return Deny

	case ActionMutateContent:
		if actorID == Anonymous {
			return Deny
		}
		if ownerID != nil && *ownerID == actorID {
			return Allow
		}
		if role == RoleModerator || role == RoleAdmin {
			return Allow
		}
		return Deny

	case ActionAdministerAccounts:
		if role == RoleAdmin && actorID != Anonymous {
			return Allow
		}
		return Deny
	}

	return Deny
}

// CanAssignRole reports whether the actor may change an account's role.
// Non-admin attempts to set a role on their own profile are not rejected;
// the write is silently dropped and the stored role kept.
func CanAssignRole(actor Role) bool {
	return actor == RoleAdmin
}
