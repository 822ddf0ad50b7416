package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mentron-app/mentron-api/internal/models"
	"github.com/mentron-app/mentron-api/internal/service"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
	"github.com/mentron-app/mentron-api/pkg/response"
)

// ContextActorKey is the gin context key storing the resolved actor.
const ContextActorKey = "currentActor"

// Actor resolves the authenticated identity against the role tables and
// attaches the result to the request context. An identity without a role
// record is rejected here; no handler runs without a resolved actor.
func Actor(identity *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := value.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		actor, err := identity.Resolve(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextActorKey, actor)
		c.Next()
	}
}
