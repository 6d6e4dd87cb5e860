package httpx

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/identity"
)

const (
	ctxUserID = "uid"
	ctxRole   = "role"
)

// Auth requires a valid bearer token and stores its user id and role in the context.
func Auth(v identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		scheme, raw, ok := strings.Cut(strings.TrimSpace(h), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			Fail(c, apperr.Unauthorized("missing bearer token"))
			return
		}
		claims, err := v.Verify(strings.TrimSpace(raw))
		if err != nil {
			Fail(c, err)
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, got := Identity(c)
		if got != role {
			Fail(c, apperr.Forbidden("requires role %s", role))
			return
		}
		c.Next()
	}
}

// Identity returns the caller stored by Auth.
func Identity(c *gin.Context) (string, identity.Role) {
	uid := c.GetString(ctxUserID)
	role, _ := c.Get(ctxRole)
	r, _ := role.(identity.Role)
	return uid, r
}
