package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/menu-sites/internal/audit"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu/menutest"
	"github.com/BruksfildServices01/menu-sites/internal/httpresp"
	"github.com/BruksfildServices01/menu-sites/internal/middleware"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

type fakeAuditReader struct {
	got  audit.Query
	logs []models.AuditLog
	err  error
}

func (f *fakeAuditReader) List(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	f.got = q
	return f.logs, int64(len(f.logs)), f.err
}

func serveAuditLogs(t *testing.T, reader AuditReader, uid, target string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewAuditLogsHandler(reader, seededStore())
	r := gin.New()
	r.GET("/api/me/audit-logs", func(c *gin.Context) { c.Set(middleware.ContextUserID, uid) }, h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestAuditLogs_ScopesAndFilters(t *testing.T) {
	reader := &fakeAuditReader{logs: []models.AuditLog{{ID: 7, RestaurantID: menutest.RestaurantID, Action: audit.ActionUpdate}}}

	w := serveAuditLogs(t, reader, menutest.OwnerID,
		"/api/me/audit-logs?action=update&entity=menu&from=2026-03-01&to=2026-03-31&page=3&limit=20")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, audit.Query{
		RestaurantID: menutest.RestaurantID,
		Action:       audit.ActionUpdate,
		Entity:       "menu",
		From:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Limit:        20,
		Offset:       40,
	}, reader.got)

	body := decode[httpresp.PageResponse[models.AuditLog]](t, w)
	assert.Equal(t, 3, body.Page)
	assert.EqualValues(t, 1, body.Total)
	require.Len(t, body.Data, 1)
	assert.Equal(t, uint(7), body.Data[0].ID)
}

func TestAuditLogs_IgnoresMalformedParams(t *testing.T) {
	reader := &fakeAuditReader{}

	w := serveAuditLogs(t, reader, menutest.OwnerID, "/api/me/audit-logs?from=yesterday&limit=9999&page=-2")
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, reader.got.From.IsZero())
	assert.Equal(t, defaultAuditLimit, reader.got.Limit)
	assert.Zero(t, reader.got.Offset)
	assert.JSONEq(t, `{"data":[],"page":1,"limit":50,"total":0}`, w.Body.String())
}

func TestAuditLogs_UnknownOwner(t *testing.T) {
	w := serveAuditLogs(t, &fakeAuditReader{}, "nobody", "/api/me/audit-logs")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "restaurant_not_found")
}

func TestAuditLogs_StoreFailure(t *testing.T) {
	w := serveAuditLogs(t, &fakeAuditReader{err: errors.New("db down")}, menutest.OwnerID, "/api/me/audit-logs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "audit_list_failed")
}
