package menu

import (
	"errors"
	"fmt"
)

var (
	ErrRestaurantNotFound   = errors.New("restaurant_not_found")
	ErrOnboardingIncomplete = errors.New("onboarding_incomplete")
	ErrMenuNotFound         = errors.New("menu_not_found")
	ErrDataIntegrity        = errors.New("data_integrity")
	ErrUpstreamTimeout      = errors.New("upstream_timeout")
	ErrUpstreamUnavailable  = errors.New("upstream_unavailable")
)

// IntegrityError reports persisted data that failed schema validation.
type IntegrityError struct {
	TenantKey string
	Field     string
	Reason    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("data integrity: tenant %s field %s: %s", e.TenantKey, e.Field, e.Reason)
}

func (e *IntegrityError) Unwrap() error {
	return ErrDataIntegrity
}

// UpstreamError wraps a persistence failure classified as timeout or
// unavailable. Kind is one of ErrUpstreamTimeout or ErrUpstreamUnavailable.
type UpstreamError struct {
	TenantKey string
	Kind      error
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%v: tenant %s: %v", e.Kind, e.TenantKey, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// IsNotFound covers every outcome the public site renders as a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRestaurantNotFound) ||
		errors.Is(err, ErrOnboardingIncomplete) ||
		errors.Is(err, ErrMenuNotFound)
}
