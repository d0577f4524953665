package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/repository"
	"github.com/profast/parcel-api/internal/services"
	"github.com/profast/parcel-api/internal/web"
)

// Keys set on the gin context by the gates below.
const (
	EmailKey = "email"
	UIDKey   = "uid"
	UserKey  = "user"
)

// AuthMiddleware verifies the bearer token and stores the caller's identity on
// the context. A missing token is 401, a rejected one 403.
func AuthMiddleware(verifier services.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// First try to get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Fields(authHeader)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = parts[1]
			}
		}

		// If not found in header, try query parameter (for WebSocket)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			web.RespondError(c, web.NewRequestError(web.ErrUnauthorized, http.StatusUnauthorized))
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			web.RespondError(c, web.NewRequestError(web.ErrInvalidToken, http.StatusForbidden))
			return
		}

		c.Set(EmailKey, identity.Email)
		c.Set(UIDKey, identity.UID)
		c.Next()
	}
}

// AdminOnly lets the request through only when the stored user for the
// authenticated email is an admin. It must be mounted after AuthMiddleware;
// without an identity on the context every request is rejected.
func AdminOnly(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(EmailKey)
		if email == "" {
			web.RespondError(c, web.NewRequestError(models.ErrForbidden, http.StatusForbidden))
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), email)
		if errors.Is(err, models.ErrNotFound) {
			web.RespondError(c, web.NewRequestError(models.ErrForbidden, http.StatusForbidden))
			return
		}
		if err != nil {
			web.RespondError(c, err)
			return
		}
		if !user.IsAdmin() {
			web.RespondError(c, web.NewRequestError(models.ErrForbidden, http.StatusForbidden))
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CallerEmail returns the authenticated email.
func CallerEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}

// CallerUser returns the user loaded by AdminOnly, or nil on routes without it.
func CallerUser(c *gin.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
