package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
	"alumni-network-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthCookieName carries the access token for browser sessions.
const AuthCookieName = "auth_token"

// tokenFromRequest prefers the Authorization header over the cookie.
func tokenFromRequest(c *gin.Context) (token string, fromCookie bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), false
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := tokenFromRequest(c)
		if tokenString == "" {
			logUnauthorized(c, "missing_token")
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		// The user is always reloaded so role and active flag are never stale.
		user, err := authUC.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			code, message := http.StatusUnauthorized, "Could not validate credentials"
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				code, message = appErr.Code, appErr.Message
			}
			logUnauthorized(c, message)
			response.Error(c, code, message, nil)
			c.Abort()
			return
		}

		role := user.Role()
		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), role)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, user.Email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserRole)) != domain.RoleAdmin {
			logUnauthorized(c, "admin_required")
			response.Error(c, http.StatusForbidden, "The user doesn't have enough privileges", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func logUnauthorized(c *gin.Context, reason string) {
	security.DefaultLogger().LogUnauthorized(
		c.Request.Context(),
		c.ClientIP(),
		c.Request.URL.Path,
		reason,
		c.GetString(RequestIDKey),
	)
}
