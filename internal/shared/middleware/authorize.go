package middleware

import (
	"github.com/gin-gonic/gin"

	"reviewhub-backend/internal/shared/authz"
	"reviewhub-backend/internal/shared/response"
)

// Authorize gates a route on the policy decision for an action with no
// resource owner. Ownership-sensitive checks (review and comment
// mutation) happen in the handlers, which know the author.
func Authorize(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)

		if authz.Decide(identity.Role, identity.UserID, action, nil) != authz.Allow {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
