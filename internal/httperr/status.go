package httperr

import (
	"errors"
	"net/http"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
)

// StatusFor maps domain errors onto HTTP statuses. Business errors are
// client mistakes; anything unrecognized is a 500.
func StatusFor(err error) int {
	var be BusinessError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, tenant.ErrTenantNotResolvable):
		return http.StatusBadRequest
	case menu.IsNotFound(err), errors.Is(err, menu.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, menu.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, menu.ErrUpstreamTimeout), errors.Is(err, menu.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &be):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Code is the stable error_code for err in JSON responses.
func Code(err error) string {
	var be BusinessError
	switch {
	case errors.As(err, &be):
		return be.Code
	case errors.Is(err, menu.ErrConflict):
		return menu.ErrConflict.Error()
	case errors.Is(err, menu.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, menu.ErrUpstreamTimeout):
		return menu.ErrUpstreamTimeout.Error()
	case errors.Is(err, menu.ErrUpstreamUnavailable):
		return menu.ErrUpstreamUnavailable.Error()
	default:
		return "internal_error"
	}
}
