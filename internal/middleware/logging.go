package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/metrics"
)

// RequestLogger logs one line per request and counts it by surface ("site"
// for tenant hosts, "root" otherwise) and status class. It must run before
// TenantHost so tenant requests are logged once.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		surface := "root"

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("host", c.Request.Host),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		}
		if v, ok := c.Get(ContextTenantKey); ok {
			if key, ok := v.(tenant.Key); ok {
				surface = "site"
				attrs = append(attrs, slog.String("tenant_key", key.String()))
			}
		}
		attrs = append(attrs, slog.String("surface", surface))

		metrics.HTTPRequests.WithLabelValues(surface, strconv.Itoa(status/100)+"xx").Inc()

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		log.LogAttrs(c.Request.Context(), level, "http request", attrs...)
	}
}
