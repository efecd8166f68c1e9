package middleware

import (
	"errors"
	"strconv"
	"time"

	"portfolio/internal/metrics"

	"github.com/labstack/echo/v4"
)

// PrometheusMetrics records request count and latency per route. Requests
// that matched no route are grouped under "unmatched".
func PrometheusMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		duration := time.Since(start).Seconds()

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}

		status := c.Response().Status
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request().Method,
			path,
			strconv.Itoa(status),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request().Method,
			path,
		).Observe(duration)

		return err
	}
}
