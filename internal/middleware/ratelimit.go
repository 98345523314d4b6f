package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/handler"
	"github.com/shinyyama/skillswap-backend/internal/logging"
	"github.com/shinyyama/skillswap-backend/internal/ratelimit"
)

// RateLimit throttles action per authenticated uid. Limiter failures let the request through.
func RateLimit(l ratelimit.Limiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := c.Get("uid").(string)
			if l == nil || uid == "" {
				return next(c)
			}
			ctx := c.Request().Context()
			ok, err := l.Allow(ctx, uid+":"+action)
			if err != nil {
				logging.FromContext(ctx).WithError(err).Warn("rate limiter unavailable")
				return next(c)
			}
			if !ok {
				return c.JSON(http.StatusTooManyRequests, handler.NewErrorResponse("rate_limited", "too many requests, slow down"))
			}
			return next(c)
		}
	}
}
