package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/repairshop/technotes-api/internal/api/metrics"
)

// Allower abstracts the rate-limit store (Redis).
type Allower interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles requests per client IP. A limiter backend failure
// fails open: losing Redis should not lock everyone out of login.
func RateLimit(limiter Allower, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("ip", c.RealIP()).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitHitsTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"message": "Too many request from this IP, please try again after a 60 second pause",
				})
			}
			return next(c)
		}
	}
}
