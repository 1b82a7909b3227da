package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu/menutest"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	ucSite "github.com/BruksfildServices01/menu-sites/internal/usecase/site"
)

type fakeLoader map[string]error

func (f fakeLoader) Execute(_ context.Context, key tenant.Key) (*menu.Aggregate, error) {
	if err := f[key.Value]; err != nil {
		return nil, err
	}
	return &menu.Aggregate{TenantKey: key, Menus: make([]menu.Menu, 1)}, nil
}

func sub(v string) tenant.Key {
	return tenant.Key{Value: v, Kind: tenant.KindSubdomain}
}

func TestCheckTenants_ClassifiesEachOutcome(t *testing.T) {
	load := fakeLoader{
		"gone":    menu.ErrRestaurantNotFound,
		"new":     menu.ErrOnboardingIncomplete,
		"broken":  &menu.IntegrityError{TenantKey: "broken", Field: "restaurant.phones", Reason: "must be a list"},
		"slow":    &menu.UpstreamError{TenantKey: "slow", Kind: menu.ErrUpstreamTimeout, Err: context.DeadlineExceeded},
		"strange": errors.New("boom"),
	}

	results := checkTenants(context.Background(), load, []tenant.Key{
		sub("fine"), sub("gone"), sub("new"), sub("broken"), sub("slow"), sub("strange"),
	})

	require.Len(t, results, 6)
	assert.Equal(t, checkResult{Tenant: "subdomain:fine", Status: statusOK, Menus: 1}, results[0])
	assert.Equal(t, statusNotFound, results[1].Status)
	assert.Equal(t, statusOnboardingIncomplete, results[2].Status)
	assert.Equal(t, checkResult{
		Tenant: "subdomain:broken",
		Status: statusIntegrity,
		Field:  "restaurant.phones",
		Reason: "must be a list",
	}, results[3])
	assert.Equal(t, statusUpstream, results[4].Status)
	assert.Contains(t, results[4].Reason, "upstream_timeout")
	assert.Equal(t, statusError, results[5].Status)

	// onboarding is not an operator failure
	assert.Equal(t, 4, countFailed(results))
}

func TestCheckTenants_AgainstStore(t *testing.T) {
	store := menutest.NewStore()
	store.Seed(menutest.Restaurant())
	load := ucSite.NewLoadRestaurantAggregate(store, nil, time.Second, slog.New(slog.DiscardHandler))

	results := checkTenants(context.Background(), load, []tenant.Key{sub("bobspizza"), sub("nobody")})

	require.Len(t, results, 2)
	assert.Equal(t, checkResult{Tenant: "subdomain:bobspizza", Status: statusOK, Menus: 2}, results[0])
	assert.Equal(t, statusNotFound, results[1].Status)
}

func TestResolveAll(t *testing.T) {
	r := tenant.NewResolver(tenant.Config{
		RootDomain:         "menus.test",
		ReservedSubdomains: []string{"www"},
		ReservedPathPrefix: "/api",
	})

	keys, err := resolveAll(r, []string{"bobspizza.menus.test", "Menu.Example.com:443"})
	require.NoError(t, err)
	assert.Equal(t, []tenant.Key{
		sub("bobspizza"),
		{Value: "menu.example.com", Kind: tenant.KindCustomDomain},
	}, keys)

	_, err = resolveAll(r, []string{"www.menus.test"})
	assert.ErrorContains(t, err, "not a tenant host")

	_, err = resolveAll(r, []string{""})
	assert.ErrorIs(t, err, tenant.ErrTenantNotResolvable)
}

func TestRender(t *testing.T) {
	results := []checkResult{
		{Tenant: "subdomain:bobspizza", Status: statusOK, Menus: 2},
		{Tenant: "subdomain:broken", Status: statusIntegrity, Field: "menus[0].slug", Reason: "invalid"},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, formatJSON, results))
		assert.JSONEq(t, `[
			{"tenant":"subdomain:bobspizza","status":"ok","menus":2},
			{"tenant":"subdomain:broken","status":"integrity","field":"menus[0].slug","reason":"invalid"}
		]`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, formatYAML, results))
		assert.NotContains(t, buf.String(), "field: \"\"")

		var back []checkResult
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
		assert.Equal(t, results, back)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, render(&bytes.Buffer{}, "toml", results))
	})
}
