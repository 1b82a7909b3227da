package view

import (
	"strings"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
)

type PageMetadata struct {
	Title       string
	Description string
	Canonical   string
	OpenGraph   OpenGraph
	Twitter     TwitterCard
}

type OpenGraph struct {
	Type        string
	SiteName    string
	Title       string
	Description string
	URL         string
	Image       string
	ImageWidth  int
	ImageHeight int
}

type TwitterCard struct {
	Card        string
	Title       string
	Description string
	Image       string
}

// Metadata projects the <head> tags for a page. explicit comes from
// menu.SelectActiveMenu: the slug segment of the canonical URL is omitted
// only when the default menu is shown without slug routing.
//
// A missing cover image yields empty image fields.
func Metadata(agg *menu.Aggregate, active *menu.Menu, explicit bool, site SiteConfig) PageMetadata {
	r := agg.Restaurant
	name := r.DisplayName()

	canonical := SiteRoot(agg.TenantKey, site) + "/"
	if active != nil && active.Slug != nil && (explicit || !agg.IsDefault(active)) {
		canonical = MenuURL(agg.TenantKey, active.Slug, site)
	}

	desc := describe(name, active)

	meta := PageMetadata{
		Title:       name,
		Description: desc,
		Canonical:   canonical,
		OpenGraph: OpenGraph{
			Type:        "website",
			SiteName:    name,
			Title:       name,
			Description: desc,
			URL:         canonical,
		},
		Twitter: TwitterCard{
			Card:        "summary",
			Title:       name,
			Description: desc,
		},
	}

	if img := r.CoverImage; img != nil {
		meta.OpenGraph.Image = img.URL
		meta.OpenGraph.ImageWidth = img.Width
		meta.OpenGraph.ImageHeight = img.Height
		meta.Twitter.Image = img.URL
		meta.Twitter.Card = "summary_large_image"
	}

	return meta
}

func describe(name string, active *menu.Menu) string {
	if active != nil && active.Description != nil {
		if d := strings.Join(strings.Fields(*active.Description), " "); d != "" {
			return d
		}
	}
	if active != nil && active.Title != nil && *active.Title != "" {
		if name == "" {
			return *active.Title + " menu"
		}
		return *active.Title + " menu at " + name
	}
	if name == "" {
		return "Menu"
	}
	return "Menu for " + name
}
