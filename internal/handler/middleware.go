package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hospitaldir/internal/auth"
)

const (
	ctxUserID = "UserID"
	ctxRole   = "Role"
)

// AuthMiddleware extracts the bearer token, verifies it and attaches the
// authenticated user id and role to the request context. It never touches
// the store: verification is recomputed from the token's signed contents.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			newErrorResponse(c, http.StatusUnauthorized, "empty authorization header")

			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			newErrorResponse(c, http.StatusUnauthorized, "invalid authorization header")

			return
		}

		userID, role, err := tokens.Verify(parts[1])
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "invalid token")

			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, role)

		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role does not match.
// Runs after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		haveRole, ok := c.Get(ctxRole)
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, "missing authentication")

			return
		}

		if haveRole != role {
			newErrorResponse(c, http.StatusForbidden, "insufficient permissions")

			return
		}

		c.Next()
	}
}
