// Package view derives the externally visible artifacts of a menu site
// (page metadata, JSON-LD and sitemap entries) from a loaded aggregate.
//
// Every entry point (page render, sitemap, CLI) goes through these functions
// so URLs are built one way only.
package view

import (
	"strings"

	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
)

type SiteConfig struct {
	RootDomain string
	Scheme     string
}

func (s SiteConfig) scheme() string {
	if s.Scheme == "" {
		return "https"
	}
	return s.Scheme
}

// SiteRoot is the origin a tenant is served from, without a trailing slash:
// {scheme}://{key}.{root} for subdomains, {scheme}://{domain} for custom
// domains.
func SiteRoot(key tenant.Key, site SiteConfig) string {
	host := key.Value
	if key.Kind == tenant.KindSubdomain {
		host = key.Value + "." + strings.TrimPrefix(site.RootDomain, ".")
	}
	return site.scheme() + "://" + host
}

// MenuURL is the URL of one menu. A nil slug maps to the site root with a
// trailing slash.
func MenuURL(key tenant.Key, slug *string, site SiteConfig) string {
	root := SiteRoot(key, site)
	if slug == nil {
		return root + "/"
	}
	return root + "/" + *slug
}
