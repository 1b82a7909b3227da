package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/audit"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/httperr"
	"github.com/BruksfildServices01/menu-sites/internal/httpresp"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditReader is implemented by *audit.Logger.
type AuditReader interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs  AuditReader
	store menu.Store
}

func NewAuditLogsHandler(logs AuditReader, store menu.Store) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, store: store}
}

// List pages through the caller's audit trail. A deleted restaurant keeps
// its history readable.
func (h *AuditLogsHandler) List(c *gin.Context) {
	r, err := h.store.FindRestaurantByOwner(c.Request.Context(), userID(c), menu.IncludeDeleted())
	if err != nil {
		httperr.NotFound(c, "restaurant_not_found", "No restaurant is registered for this account.")
		return
	}

	q, page := auditQuery(c)
	q.RestaurantID = r.ID

	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Page(c, logs, page, q.Limit, total)
}

// auditQuery reads the filters. Malformed dates and numbers are ignored
// rather than rejected.
func auditQuery(c *gin.Context) (audit.Query, int) {
	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if q.Limit <= 0 || q.Limit > maxAuditLimit {
		q.Limit = defaultAuditLimit
	}
	q.Offset = (page - 1) * q.Limit

	if from, err := time.Parse(time.DateOnly, c.Query("from")); err == nil {
		q.From = from
	}
	if to, err := time.Parse(time.DateOnly, c.Query("to")); err == nil {
		// the whole "to" day is included
		q.To = to.AddDate(0, 0, 1)
	}

	return q, page
}
