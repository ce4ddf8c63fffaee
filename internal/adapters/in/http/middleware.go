package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// CallerHeader carries the authenticated identity set by the gateway in
// front of the service.
const CallerHeader = "X-Caller-Address"

const callerKey = "caller"

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RequireCaller rejects requests without a valid caller address with 401.
func RequireCaller() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(CallerHeader)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: CallerHeader + " header is required",
				})
			}

			caller, err := kernel.NewAddress(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid caller address: " + err.Error(),
				})
			}

			c.Set(callerKey, caller)
			return next(c)
		}
	}
}

func callerFrom(c echo.Context) kernel.Address {
	caller, _ := c.Get(callerKey).(kernel.Address)
	return caller
}

// RateLimit counts requests per caller and answers 429 once the limit is
// exceeded. It must run after RequireCaller. A limiter failure lets the
// request through.
func RateLimit(limiter Limiter, exceeded prometheus.Counter, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := callerFrom(c).String()

			allowed, err := limiter.Allow(c.Request().Context(), caller)
			if err != nil {
				logger.Warn("rate limiter unavailable", "caller", caller, "error", err)
				return next(c)
			}

			if !allowed {
				if exceeded != nil {
					exceeded.Inc()
				}
				logger.Warn("rate limit exceeded",
					"caller", caller,
					"method", c.Request().Method,
					"path", c.Path(),
				)
				c.Response().Header().Set("Retry-After", "60")
				return c.JSON(http.StatusTooManyRequests, ErrorResponse{
					Code:    http.StatusTooManyRequests,
					Message: "too many requests",
				})
			}

			return next(c)
		}
	}
}

// Observability records request counters and latency by route pattern and
// logs every request.
func Observability(m *metrics.Metrics, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			elapsed := time.Since(start)
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := strconv.Itoa(c.Response().Status)

			m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Request().Method, path, status).Observe(elapsed.Seconds())

			logger.Info("http request",
				"method", c.Request().Method,
				"path", path,
				"status", c.Response().Status,
				"duration", elapsed,
			)

			return nil
		}
	}
}
