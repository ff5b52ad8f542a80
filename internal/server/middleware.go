package server

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AlexaLeb/MoneyShare/internal/auth"
	"github.com/AlexaLeb/MoneyShare/internal/metrics"
)

// userIDKey is the echo context key for the authenticated user id.
const userIDKey = "user_id"

// UserID extracts the authenticated user id from the request context.
// Returns zero if the request is unauthenticated.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

// RequireAuth returns a middleware that validates Bearer JWT tokens and puts
// the user id into the request context.
func RequireAuth(jwtManager *auth.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(401, auth.ErrMissingToken.Error())
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return echo.NewHTTPError(401, auth.ErrInvalidToken.Error())
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				return echo.NewHTTPError(401, auth.ErrInvalidToken.Error())
			}

			c.Set(userIDKey, claims.UserID)
			return next(c)
		}
	}
}

// RequestLogger logs every request with its route, user, status and
// duration.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			attrs := []any{
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"user_id", UserID(c),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch {
			case status >= 500:
				slog.Error("Request failed", attrs...)
			case status >= 400:
				slog.Warn("Request rejected", attrs...)
			default:
				slog.Info("Request completed", attrs...)
			}
			return err
		}
	}
}

// Instrument records Prometheus counters and latency per route.
func Instrument() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			method := c.Request().Method
			path := c.Path()
			metrics.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			metrics.HTTPDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
