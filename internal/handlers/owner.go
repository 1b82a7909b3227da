package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/audit"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/httperr"
	"github.com/BruksfildServices01/menu-sites/internal/middleware"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

// CacheInvalidator drops cached aggregates after an owner edit. The redis
// cache implements it; a nil invalidator means caching is off.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...tenant.Key) error
}

type AuditSink interface {
	Dispatch(ev audit.Event)
}

// owner is embedded by every authenticated handler.
type owner struct {
	store menu.Store
	cache CacheInvalidator
	audit AuditSink
	log   *slog.Logger
}

func newOwner(store menu.Store, cache CacheInvalidator, sink AuditSink, log *slog.Logger) owner {
	if log == nil {
		log = slog.Default()
	}
	return owner{store: store, cache: cache, audit: sink, log: log}
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

// restaurant loads the caller's live restaurant, writing the error response
// when there is none.
func (o owner) restaurant(c *gin.Context) (*models.Restaurant, bool) {
	r, err := o.store.FindRestaurantByOwner(c.Request.Context(), userID(c))
	if err != nil {
		if errors.Is(err, menu.ErrRecordNotFound) {
			httperr.NotFound(c, "restaurant_not_found", "No restaurant is registered for this account.")
			return nil, false
		}
		o.fail(c, err, "failed_to_get_restaurant")
		return nil, false
	}
	return r, true
}

// tenantKeys lists every key under which r's aggregate may be cached.
func tenantKeys(r *models.Restaurant) []tenant.Key {
	var keys []tenant.Key
	if r.Subdomain != nil && *r.Subdomain != "" {
		keys = append(keys, tenant.Key{Value: *r.Subdomain, Kind: tenant.KindSubdomain})
	}
	if r.CustomDomain != nil && *r.CustomDomain != "" {
		keys = append(keys, tenant.Key{Value: *r.CustomDomain, Kind: tenant.KindCustomDomain})
	}
	return keys
}

func (o owner) invalidate(ctx context.Context, keys ...tenant.Key) {
	if o.cache == nil || len(keys) == 0 {
		return
	}
	if err := o.cache.Invalidate(ctx, keys...); err != nil {
		// entries still expire on their TTL
		o.log.Warn("aggregate cache invalidation failed", slog.Any("error", err))
	}
}

func (o owner) record(c *gin.Context, r *models.Restaurant, action, entity, entityID string, meta any) {
	if o.audit == nil {
		return
	}
	uid := userID(c)
	o.audit.Dispatch(audit.Event{
		RestaurantID: r.ID,
		UserID:       &uid,
		Action:       action,
		Entity:       entity,
		EntityID:     &entityID,
		Metadata:     meta,
	})
}

// changed invalidates r's cached site and records the audit event.
func (o owner) changed(c *gin.Context, r *models.Restaurant, action, entity, entityID string, meta any) {
	o.invalidate(c.Request.Context(), tenantKeys(r)...)
	o.record(c, r, action, entity, entityID, meta)
}

// fail maps store errors to a JSON error. fallback is the error_code of
// unexpected failures, which are also logged.
func (o owner) fail(c *gin.Context, err error, fallback string) {
	switch status := httperr.StatusFor(err); status {
	case http.StatusInternalServerError:
		o.log.Error("owner request failed",
			slog.String("path", c.FullPath()),
			slog.String("user_id", userID(c)),
			slog.Any("error", err),
		)
		httperr.Internal(c, fallback, "Unexpected error, please try again.")
	case http.StatusServiceUnavailable:
		httperr.ServiceUnavailable(c, retryAfterSeconds, httperr.Code(err), "The database is busy, please retry.")
	case http.StatusUnprocessableEntity:
		httperr.WriteBusiness(c, err, "The request could not be applied.")
	default:
		httperr.Write(c, status, httperr.Code(err), http.StatusText(status))
	}
}

// notFoundOr answers a missing row with code, anything else via fail.
func (o owner) notFoundOr(c *gin.Context, err error, code, fallback string) {
	if errors.Is(err, menu.ErrRecordNotFound) {
		httperr.NotFound(c, code, "Not found.")
		return
	}
	o.fail(c, err, fallback)
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_request",
		"details": err.Error(),
	})
}

func readOptions(c *gin.Context) []menu.ReadOption {
	if c.Query("include_deleted") == "true" {
		return []menu.ReadOption{menu.IncludeDeleted()}
	}
	return nil
}
