package view

import (
	"encoding/xml"
	"time"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
)

const ChangeWeekly = "weekly"

type SitemapEntry struct {
	URL             string    `json:"url" yaml:"url"`
	LastModified    time.Time `json:"lastModified" yaml:"lastModified"`
	ChangeFrequency string    `json:"changeFrequency" yaml:"changeFrequency"`
}

// SitemapEntries returns the site root followed by one entry per menu, in
// menu order. lastModified is the generation time, not a stored timestamp.
func SitemapEntries(key tenant.Key, menus []menu.Menu, site SiteConfig, now time.Time) []SitemapEntry {
	now = now.UTC().Truncate(time.Second)

	entries := make([]SitemapEntry, 0, len(menus)+1)
	entries = append(entries, SitemapEntry{
		URL:             SiteRoot(key, site),
		LastModified:    now,
		ChangeFrequency: ChangeWeekly,
	})
	for _, m := range menus {
		entries = append(entries, SitemapEntry{
			URL:             MenuURL(key, m.Slug, site),
			LastModified:    now,
			ChangeFrequency: ChangeWeekly,
		})
	}
	return entries
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
}

// SitemapXML encodes entries as a sitemaps.org 0.9 document.
func SitemapXML(entries []SitemapEntry) ([]byte, error) {
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(entries)),
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        e.URL,
			LastMod:    e.LastModified.Format(time.RFC3339),
			ChangeFreq: e.ChangeFrequency,
		})
	}

	body, err := xml.Marshal(set)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
