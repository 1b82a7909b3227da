package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/httperr"
	"github.com/BruksfildServices01/menu-sites/internal/metrics"
)

const ContextTenantKey = "tenantKey"

type tenantCtxKey struct{}

func WithTenant(ctx context.Context, key tenant.Key) context.Context {
	return context.WithValue(ctx, tenantCtxKey{}, key)
}

// TenantFrom returns the key TenantHost attached to the request context.
func TenantFrom(ctx context.Context) (tenant.Key, bool) {
	key, ok := ctx.Value(tenantCtxKey{}).(tenant.Key)
	return key, ok
}

// TenantHost dispatches on the Host header before any route matches.
//
//   - a reserved path prefix is a 404 on every host
//   - a malformed host is a 400
//   - a tenant host is handed to site with the key in the request context
//   - the root domain (or a reserved label) continues down this engine
//
// With a dev override every host is the tenant, so paths under rootPaths stay
// on this engine instead; otherwise the owner API would be unreachable
// locally. The path is never rewritten; the site engine routes /{menuSlug}
// itself.
func TenantHost(resolver *tenant.Resolver, site http.Handler, rootPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if resolver.IsReservedPath(path) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		if resolver.Overridden() && underAny(path, rootPaths) {
			metrics.TenantResolutions.WithLabelValues(metrics.OutcomeRoot, "").Inc()
			c.Next()
			return
		}

		key, err := resolver.Resolve(c.Request.Host)
		if err != nil {
			metrics.TenantResolutions.WithLabelValues(metrics.OutcomeInvalid, "").Inc()
			httperr.BadRequest(c, "invalid_host", "Host header is not a valid hostname.")
			c.Abort()
			return
		}

		if key == nil {
			metrics.TenantResolutions.WithLabelValues(metrics.OutcomeRoot, "").Inc()
			c.Next()
			return
		}

		metrics.TenantResolutions.WithLabelValues(metrics.OutcomeTenant, string(key.Kind)).Inc()
		c.Set(ContextTenantKey, *key)

		site.ServeHTTP(c.Writer, c.Request.WithContext(WithTenant(c.Request.Context(), *key)))
		c.Abort()
	}
}

func underAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
