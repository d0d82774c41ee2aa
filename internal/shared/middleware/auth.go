package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reviewhub-backend/internal/shared/authz"
	"reviewhub-backend/internal/shared/response"
	"reviewhub-backend/pkg/jwt"
)

// Identity is the authenticated caller, extracted from the access token.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     authz.Role
}

const identityKey = "identity"

// Auth requires a valid Bearer token and stores the caller's Identity
// in the request context.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := parseIdentity(c, manager)
		if !ok {
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth extracts an Identity when a token is present but lets
// anonymous requests through. Read endpoints use this so that listing
// stays public while the policy still sees who is asking.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		identity, ok := parseIdentity(c, manager)
		if !ok {
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the caller's identity, or an anonymous one.
func GetIdentity(c *gin.Context) Identity {
	if v, exists := c.Get(identityKey); exists {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{UserID: authz.Anonymous, Role: authz.RoleUser}
}

func parseIdentity(c *gin.Context, manager *jwt.Manager) (Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, "missing authorization header")
		return Identity{}, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, "invalid authorization header format")
		return Identity{}, false
	}

	claims, err := manager.ValidateToken(parts[1])
	if err != nil {
		response.Unauthorized(c, "invalid token")
		return Identity{}, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Unauthorized(c, "invalid user ID in token")
		return Identity{}, false
	}

	role := authz.Role(claims.Role)
	if !role.IsValid() {
		response.Unauthorized(c, "invalid role in token")
		return Identity{}, false
	}

	return Identity{UserID: userID, Username: claims.Username, Role: role}, true
}
