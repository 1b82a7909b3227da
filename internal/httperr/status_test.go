package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{tenant.ErrTenantNotResolvable, http.StatusBadRequest},
		{menu.ErrRestaurantNotFound, http.StatusNotFound},
		{menu.ErrOnboardingIncomplete, http.StatusNotFound},
		{menu.ErrMenuNotFound, http.StatusNotFound},
		{menu.ErrRecordNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: ux_menus_restaurant_slug_live", menu.ErrConflict), http.StatusConflict},
		{&menu.UpstreamError{Kind: menu.ErrUpstreamTimeout, Err: errors.New("slow")}, http.StatusServiceUnavailable},
		{&menu.UpstreamError{Kind: menu.ErrUpstreamUnavailable, Err: errors.New("down")}, http.StatusServiceUnavailable},
		{&menu.IntegrityError{Field: "restaurant.hours"}, http.StatusInternalServerError},
		{ErrBusiness("invalid_slug"), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), "%v", tt.err)
	}
}

func TestCode(t *testing.T) {
	assert.Equal(t, "invalid_slug", Code(ErrBusiness("invalid_slug")))
	assert.Equal(t, "conflict", Code(fmt.Errorf("%w: x", menu.ErrConflict)))
	assert.Equal(t, "internal_error", Code(errors.New("boom")))
	assert.True(t, IsBusiness(ErrBusiness("invalid_slug"), "invalid_slug"))
}

func TestWriteBusiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("field and message from the error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		WriteBusiness(c, ErrInvalidField("invalid_restaurant", "hours.monday.openTime", "must be HH:MM"), "fallback")

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"error_code":"invalid_restaurant","message":"must be HH:MM","field":"hours.monday.openTime"}`, w.Body.String())
	})

	t.Run("plain code falls back", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		WriteBusiness(c, ErrBusiness("invalid_email"), "The restaurant could not be updated.")

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"error_code":"invalid_email","message":"The restaurant could not be updated."}`, w.Body.String())
	})
}

func TestServiceUnavailable_SetsRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ServiceUnavailable(c, "5", "upstream_timeout", "busy")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "5", w.Header().Get("Retry-After"))
}
