// Package session resolves the sessionId cookie to a user and guards routes
// that require one.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"diet_backend/internal/api"
	"diet_backend/internal/feature/users/domain/entity"
	"diet_backend/internal/feature/users/usecase"
)

const (
	// CookieName is the cookie that carries the session token.
	CookieName = "sessionId"

	// CookieMaxAge is how long a freshly issued cookie lives.
	CookieMaxAge = 7 * 24 * time.Hour

	// ContextUser is the gin context key holding the resolved *entity.User.
	ContextUser = "user"
)

// UserFinder resolves a session token to its user.
type UserFinder interface {
	FindBySessionID(ctx context.Context, sessionID string) (*entity.User, error)
}

// Required returns a Gin middleware that rejects requests without a session
// cookie that resolves to a user. On success the user is stored under
// ContextUser.
func Required(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read the cookie
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized."})
			return
		}

		// 2. Resolve it to a user
		user, err := users.FindBySessionID(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.Unauthorized)
				return
			}
			slog.Error("session lookup failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.InternalError)
			return
		}

		// 3. Hand the user to downstream handlers
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by Required.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

// SetCookie issues the sessionId cookie scoped to the whole site.
func SetCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(CookieMaxAge.Seconds()), "/", "", secure, true)
}
