package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver() *Resolver {
	return NewResolver(Config{
		RootDomain:         "example.com",
		ReservedSubdomains: []string{"www"},
		ReservedPathPrefix: "/_internal",
	})
}

func TestResolve_Subdomain(t *testing.T) {
	r := newTestResolver()

	key, err := r.Resolve("bobspizza.example.com")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, Key{Value: "bobspizza", Kind: KindSubdomain}, *key)
}

func TestResolve_CustomDomain(t *testing.T) {
	r := newTestResolver()

	key, err := r.Resolve("bobspizza-customdomain.com")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, Key{Value: "bobspizza-customdomain.com", Kind: KindCustomDomain}, *key)
}

func TestResolve_SubdomainRoundTrip(t *testing.T) {
	r := newTestResolver()

	for _, label := range []string{"a", "bobs-pizza", "cafe42", "x1y2z3"} {
		key, err := r.Resolve(label + ".example.com")
		require.NoError(t, err)
		require.NotNil(t, key)
		assert.Equal(t, label, key.Value)

		again, err := r.Resolve(key.Value + "." + r.RootDomain())
		require.NoError(t, err)
		assert.Equal(t, key, again)
	}
}

func TestResolve_NoTenant(t *testing.T) {
	r := newTestResolver()

	for _, host := range []string{"example.com", "EXAMPLE.com", "example.com:8080", "example.com.", "www.example.com"} {
		key, err := r.Resolve(host)
		require.NoError(t, err, host)
		assert.Nil(t, key, host)
	}
}

func TestResolve_NormalizesHost(t *testing.T) {
	r := newTestResolver()

	key, err := r.Resolve("  BobsPizza.Example.com:443 ")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, "bobspizza", key.Value)

	key, err = r.Resolve("Menu.SomeRestaurant.com.")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, Key{Value: "menu.somerestaurant.com", Kind: KindCustomDomain}, *key)
}

func TestResolve_Malformed(t *testing.T) {
	r := newTestResolver()

	for _, host := range []string{"", "   ", "bad host.com", "under_score.example.com", "a.b.example.com", "evil.com/path", "user@evil.com"} {
		key, err := r.Resolve(host)
		assert.ErrorIs(t, err, ErrTenantNotResolvable, "host %q", host)
		assert.Nil(t, key)
	}
}

func TestResolve_DevOverrideWins(t *testing.T) {
	r := NewResolver(Config{RootDomain: "example.com", DevOverrideHost: "bobspizza"})

	for _, host := range []string{"", "localhost:3000", "example.com", "other.example.com"} {
		key, err := r.Resolve(host)
		require.NoError(t, err)
		require.NotNil(t, key)
		assert.Equal(t, Key{Value: "bobspizza", Kind: KindSubdomain}, *key)
	}

	custom := NewResolver(Config{RootDomain: "example.com", DevOverrideHost: "menu.somerestaurant.com"})
	key, err := custom.Resolve("localhost")
	require.NoError(t, err)
	assert.Equal(t, KindCustomDomain, key.Kind)

	assert.True(t, r.Overridden())
	assert.False(t, newTestResolver().Overridden())
}

func TestIsReservedPath(t *testing.T) {
	r := newTestResolver()

	assert.True(t, r.IsReservedPath("/_internal"))
	assert.True(t, r.IsReservedPath("/_internal/"))
	assert.True(t, r.IsReservedPath("/_internal/sites/bobspizza"))
	assert.False(t, r.IsReservedPath("/_internals"))
	assert.False(t, r.IsReservedPath("/"))
	assert.False(t, r.IsReservedPath("/dinner"))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "subdomain:bobspizza", Key{Value: "bobspizza", Kind: KindSubdomain}.String())
}
