package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/service"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ctxUserID   = "user_id"
	ctxUserRole = "user_role"
)

// RequireAuth creates middleware that validates the Bearer access token
// before handler dispatch and stores the authenticated subject in the
// request context.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		if !strings.HasPrefix(auth, "Bearer ") {
			abortWithError(c, core.ErrInvalidToken)
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")

		session, err := authService.Verify(c.Request.Context(), token, core.TokenTypeAccess)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ctxUserID, session.Subject)
		c.Set(ctxUserRole, session.Role)

		c.Next()
	}
}

// RequireRole creates middleware that rejects authenticated users whose
// role is not in the allowed set. It must run after RequireAuth.
func RequireRole(allowed ...core.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ctxUserRole)
		if !exists {
			abortWithError(c, core.ErrInvalidToken)
			return
		}

		role := value.(core.Role)
		for _, candidate := range allowed {
			if role == candidate {
				c.Next()
				return
			}
		}

		abortWithError(c, core.ErrPermissionDenied)
	}
}
