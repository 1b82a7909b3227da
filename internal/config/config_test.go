package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ROOT_DOMAIN", "Example.com")
	t.Setenv("APP_ENV", "development")

	cfg := Load()

	assert.Equal(t, "example.com", cfg.Tenancy.RootDomain)
	assert.Equal(t, []string{"www"}, cfg.Tenancy.ReservedSubdomains)
	assert.Equal(t, "/_internal", cfg.Tenancy.ReservedPathPrefix)
	assert.Equal(t, 3*time.Second, cfg.Site.LoadTimeout)
	assert.Zero(t, cfg.Site.CacheTTL)
	assert.Equal(t, ":8080", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestLoad_DevOverrideDroppedInProduction(t *testing.T) {
	t.Setenv("APP_ENV", EnvProduction)
	t.Setenv("DEV_TENANT_HOST", "bobspizza")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Empty(t, cfg.Tenancy.DevOverrideHost)
}

func TestLoad_DevOverrideKeptOutsideProduction(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DEV_TENANT_HOST", "bobspizza")

	cfg := Load()

	assert.Equal(t, "bobspizza", cfg.Tenancy.DevOverrideHost)
}

func TestLoad_ParsesListsAndDurations(t *testing.T) {
	t.Setenv("RESERVED_SUBDOMAINS", " WWW, app ,,api")
	t.Setenv("SITE_LOAD_TIMEOUT", "750ms")
	t.Setenv("SITE_CACHE_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, []string{"www", "app", "api"}, cfg.Tenancy.ReservedSubdomains)
	assert.Equal(t, 750*time.Millisecond, cfg.Site.LoadTimeout)
	assert.Zero(t, cfg.Site.CacheTTL)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Tenancy: Tenancy{RootDomain: "example.com", ReservedPathPrefix: "/_internal"},
			Site:    Site{LoadTimeout: time.Second},
		}
	}

	require.NoError(t, base().Validate())

	noRoot := base()
	noRoot.Tenancy.RootDomain = " "
	assert.Error(t, noRoot.Validate())

	badPrefix := base()
	badPrefix.Tenancy.ReservedPathPrefix = "_internal"
	assert.Error(t, badPrefix.Validate())

	noTimeout := base()
	noTimeout.Site.LoadTimeout = 0
	assert.Error(t, noTimeout.Validate())
}
