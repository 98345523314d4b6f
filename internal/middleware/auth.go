package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/auth"
	"github.com/shinyyama/skillswap-backend/internal/handler"
	"github.com/shinyyama/skillswap-backend/internal/logging"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	"github.com/shinyyama/skillswap-backend/internal/reqctx"
)

// UserSyncer keeps the users table in step with verified identities.
type UserSyncer interface {
	Sync(ctx context.Context, id auth.Identity) (*model.User, error)
}

type AuthMiddleware struct {
	verifier auth.Verifier
	users    UserSyncer
}

func NewAuthMiddleware(verifier auth.Verifier, users UserSyncer) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, users: users}
}

// RequireAuth verifies the bearer token, upserts the caller and exposes the uid as c.Get("uid").
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized", "missing bearer token"))
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		ctx := c.Request().Context()
		id, err := m.verifier.Verify(ctx, tokenStr)
		if err != nil {
			logging.FromContext(ctx).WithError(err).Debug("token rejected")
			return c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid_token", "invalid token"))
		}
		if m.users != nil {
			if _, err := m.users.Sync(ctx, *id); err != nil {
				if errors.Is(err, repository.ErrDBNotReady) {
					return c.JSON(http.StatusServiceUnavailable, handler.NewErrorResponse("service_unavailable", "database not ready"))
				}
				logging.FromContext(ctx).WithError(err).Error("user sync failed")
				return c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal_error", "failed to load user"))
			}
		}
		c.Set("uid", id.UID)
		c.SetRequest(c.Request().WithContext(reqctx.WithUID(ctx, id.UID)))
		return next(c)
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(isAdmin func(uid string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := c.Get("uid").(string)
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized", "missing uid"))
			}
			if !isAdmin(uid) {
				return c.JSON(http.StatusForbidden, handler.NewErrorResponse("forbidden", "admin only"))
			}
			return next(c)
		}
	}
}
