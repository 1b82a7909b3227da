package view_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu/menutest"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/models"
	"github.com/BruksfildServices01/menu-sites/internal/view"
)

var (
	site    = view.SiteConfig{RootDomain: "menus.test", Scheme: "https"}
	bobsKey = tenant.Key{Value: "bobspizza", Kind: tenant.KindSubdomain}
)

func buildAggregate(t *testing.T, rec *models.Restaurant, key tenant.Key) *menu.Aggregate {
	t.Helper()
	agg, err := menu.Build(rec, key)
	require.NoError(t, err)
	return agg
}

func TestMetadata_CanonicalURL(t *testing.T) {
	agg := buildAggregate(t, menutest.Restaurant(), bobsKey)

	tests := []struct {
		name string
		slug string
		want string
	}{
		{"default menu without slug", "", "https://bobspizza.menus.test/"},
		{"explicit non-default menu", "dinner", "https://bobspizza.menus.test/dinner"},
		{"explicit default menu keeps slug", "lunch", "https://bobspizza.menus.test/lunch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, explicit, err := menu.SelectActiveMenu(agg, tt.slug)
			require.NoError(t, err)

			meta := view.Metadata(agg, active, explicit, site)
			assert.Equal(t, tt.want, meta.Canonical)
			assert.Equal(t, tt.want, meta.OpenGraph.URL)
			assert.Equal(t, "Bob's Pizza", meta.Title)
		})
	}
}

func TestMetadata_CustomDomainCanonical(t *testing.T) {
	key := tenant.Key{Value: "menu.bobspizza.com", Kind: tenant.KindCustomDomain}
	agg := buildAggregate(t, menutest.Restaurant(), key)

	active, explicit, err := menu.SelectActiveMenu(agg, "dinner")
	require.NoError(t, err)

	meta := view.Metadata(agg, active, explicit, site)
	assert.Equal(t, "https://menu.bobspizza.com/dinner", meta.Canonical)
}

func TestMetadata_MissingCoverImage(t *testing.T) {
	rec := menutest.Restaurant()
	rec.CoverImage = nil
	agg := buildAggregate(t, rec, bobsKey)

	active, explicit, err := menu.SelectActiveMenu(agg, "")
	require.NoError(t, err)

	meta := view.Metadata(agg, active, explicit, site)
	assert.Equal(t, "", meta.OpenGraph.Image)
	assert.Equal(t, "", meta.Twitter.Image)
	assert.Equal(t, "summary", meta.Twitter.Card)
}

func TestMetadata_CoverImage(t *testing.T) {
	agg := buildAggregate(t, menutest.Restaurant(), bobsKey)
	active, explicit, err := menu.SelectActiveMenu(agg, "")
	require.NoError(t, err)

	meta := view.Metadata(agg, active, explicit, site)
	assert.Equal(t, "https://cdn.test/cover.webp", meta.OpenGraph.Image)
	assert.Equal(t, 1200, meta.OpenGraph.ImageWidth)
	assert.Equal(t, "summary_large_image", meta.Twitter.Card)
	assert.Equal(t, "Lunch served daily", meta.Description)
}

type ldGraph struct {
	Context       string `json:"@context"`
	Type          string `json:"@type"`
	Name          string `json:"name"`
	Telephone     string `json:"telephone"`
	PriceRange    string `json:"priceRange"`
	ServesCuisine string `json:"servesCuisine"`
	Address       *struct {
		AddressLocality string `json:"addressLocality"`
	} `json:"address"`
	OpeningHours []struct {
		DayOfWeek string `json:"dayOfWeek"`
		Opens     string `json:"opens"`
	} `json:"openingHoursSpecification"`
	HasMenu []struct {
		Name           string `json:"name"`
		URL            string `json:"url"`
		HasMenuSection []struct {
			Name        string `json:"name"`
			HasMenuItem []struct {
				Name   string `json:"name"`
				Offers []struct {
					Price         string `json:"price"`
					PriceCurrency string `json:"priceCurrency"`
				} `json:"offers"`
			} `json:"hasMenuItem"`
		} `json:"hasMenuSection"`
	} `json:"hasMenu"`
}

func TestStructuredData_Graph(t *testing.T) {
	agg := buildAggregate(t, menutest.Restaurant(), bobsKey)

	raw, err := view.StructuredData(agg, site)
	require.NoError(t, err)

	var g ldGraph
	require.NoError(t, json.Unmarshal(raw, &g))

	assert.Equal(t, "https://schema.org", g.Context)
	assert.Equal(t, "Restaurant", g.Type)
	assert.Equal(t, "555-0100", g.Telephone)
	assert.Equal(t, "$0.00 - $18.50", g.PriceRange)
	assert.Equal(t, "American", g.ServesCuisine)
	require.NotNil(t, g.Address)
	assert.Equal(t, "Springfield", g.Address.AddressLocality)

	require.Len(t, g.OpeningHours, 1)
	assert.Equal(t, "Monday", g.OpeningHours[0].DayOfWeek)
	assert.Equal(t, "11:00", g.OpeningHours[0].Opens)

	require.Len(t, g.HasMenu, 2)
	assert.Equal(t, "Lunch", g.HasMenu[0].Name)
	assert.Equal(t, "https://bobspizza.menus.test/lunch", g.HasMenu[0].URL)

	lunch := g.HasMenu[0]
	require.Len(t, lunch.HasMenuSection, 2)
	slices := lunch.HasMenuSection[0]
	assert.Equal(t, "Slices", slices.Name)
	require.Len(t, slices.HasMenuItem, 3)
	require.Len(t, slices.HasMenuItem[0].Offers, 1)
	assert.Equal(t, "$3.50", slices.HasMenuItem[0].Offers[0].Price)
	assert.Equal(t, "USD", slices.HasMenuItem[0].Offers[0].PriceCurrency)
	assert.Empty(t, slices.HasMenuItem[2].Offers)

	drinks := lunch.HasMenuSection[1]
	require.Len(t, drinks.HasMenuItem, 1)
	require.Len(t, drinks.HasMenuItem[0].Offers, 1)
	assert.Equal(t, "$0.00", drinks.HasMenuItem[0].Offers[0].Price)
}

func TestStructuredData_IsDeterministic(t *testing.T) {
	agg := buildAggregate(t, menutest.Restaurant(), bobsKey)

	first, err := view.StructuredData(agg, site)
	require.NoError(t, err)
	for range 5 {
		again, err := view.StructuredData(agg, site)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestStructuredData_NoPricesHasNoRange(t *testing.T) {
	rec := menutest.Restaurant()
	for mi := range rec.Menus {
		for si := range rec.Menus[mi].Sections {
			for ii := range rec.Menus[mi].Sections[si].Items {
				rec.Menus[mi].Sections[si].Items[ii].Price = nil
			}
		}
	}
	agg := buildAggregate(t, rec, bobsKey)

	raw, err := view.StructuredData(agg, site)
	require.NoError(t, err)

	out := string(raw)
	assert.NotContains(t, out, "Infinity")
	assert.NotContains(t, out, "NaN")
	assert.NotContains(t, out, "priceRange")
	assert.NotContains(t, out, "offers")
}

func TestSitemapEntries(t *testing.T) {
	agg := buildAggregate(t, menutest.Restaurant(), bobsKey)
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	entries := view.SitemapEntries(bobsKey, agg.Menus, site, now)
	require.Len(t, entries, 1+len(agg.Menus))

	assert.Equal(t, "https://bobspizza.menus.test", entries[0].URL)
	assert.Equal(t, "https://bobspizza.menus.test/lunch", entries[1].URL)
	assert.Equal(t, "https://bobspizza.menus.test/dinner", entries[2].URL)

	for _, e := range entries {
		assert.Equal(t, 1, strings.Count(e.URL, bobsKey.Value), e.URL)
		assert.Equal(t, "weekly", e.ChangeFrequency)
		assert.True(t, now.Equal(e.LastModified))
	}
}

func TestSitemapEntries_NilSlug(t *testing.T) {
	rec := menutest.Restaurant()
	rec.Menus[0].Slug = nil
	agg := buildAggregate(t, rec, bobsKey)

	entries := view.SitemapEntries(bobsKey, agg.Menus, site, time.Now())
	require.Len(t, entries, 3)
	assert.Equal(t, "https://bobspizza.menus.test/", entries[2].URL)
}

func TestSitemapXML(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	body, err := view.SitemapXML([]view.SitemapEntry{
		{URL: "https://bobspizza.menus.test", LastModified: now, ChangeFrequency: view.ChangeWeekly},
	})
	require.NoError(t, err)

	out := string(body)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://bobspizza.menus.test</loc>")
	assert.Contains(t, out, "<lastmod>2026-03-04T05:06:07Z</lastmod>")
	assert.Contains(t, out, "<changefreq>weekly</changefreq>")
}

func TestNewPage(t *testing.T) {
	agg := buildAggregate(t, menutest.Restaurant(), bobsKey)
	active, explicit, err := menu.SelectActiveMenu(agg, "dinner")
	require.NoError(t, err)

	page, err := view.NewPage(agg, active, explicit, site)
	require.NoError(t, err)

	require.Len(t, page.Nav, 2)
	assert.Equal(t, "https://bobspizza.menus.test/", page.Nav[0].URL)
	assert.False(t, page.Nav[0].Active)
	assert.Equal(t, "https://bobspizza.menus.test/dinner", page.Nav[1].URL)
	assert.True(t, page.Nav[1].Active)
	assert.NotEmpty(t, page.JSONLD)
	require.Len(t, page.Hours, 2)
	assert.Equal(t, "monday", page.Hours[0].Day)
	assert.False(t, page.Hours[1].IsOpen)
}
