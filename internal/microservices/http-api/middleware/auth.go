package middleware

import (
	"strings"

	"yamdb/internal/apperr"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// AuthMiddleware resolves an optional bearer token. Requests without an
// Authorization header continue anonymously; a malformed or invalid token is
// rejected with 401. The user record is reloaded on every request so role
// changes and deletions apply at once.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// format: "Bearer <token>"
		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			AbortWithError(c, apperr.Authentication("invalid authorization header format"))
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil for anonymous
// requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// RequireAuthenticated rejects anonymous callers whatever the method.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			AbortWithError(c, policy.ErrAuthenticationRequired)
			return
		}
		c.Next()
	}
}

// RequireAdmin guards user administration.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.AdminOnly(CurrentUser(c)); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// AdminOrReadOnly lets anyone read and only admins write.
func AdminOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.AdminOrReadOnly(CurrentUser(c), c.Request.Method); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// AuthenticatedOrReadOnly lets anyone read and any signed-in user write;
// object-level checks happen in the services.
func AuthenticatedOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.AuthenticatedOrReadOnly(CurrentUser(c), c.Request.Method); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
