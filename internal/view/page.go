package view

import (
	"html/template"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
)

// Page is the template model of a rendered menu page.
type Page struct {
	Meta       PageMetadata
	JSONLD     template.JS
	SiteRoot   string
	Restaurant menu.Restaurant
	Nav        []MenuLink
	Active     *menu.Menu
	Hours      []DayLine
}

type MenuLink struct {
	Title  string
	URL    string
	Active bool
}

type DayLine struct {
	Day    string
	IsOpen bool
	Opens  string
	Closes string
}

// NewPage assembles everything a menu page template needs. Navigation links
// use the same URL builder as the sitemap; the default menu links to the
// site root.
func NewPage(agg *menu.Aggregate, active *menu.Menu, explicit bool, site SiteConfig) (*Page, error) {
	ld, err := StructuredData(agg, site)
	if err != nil {
		return nil, err
	}

	p := &Page{
		Meta:       Metadata(agg, active, explicit, site),
		JSONLD:     template.JS(ld),
		SiteRoot:   SiteRoot(agg.TenantKey, site) + "/",
		Restaurant: agg.Restaurant,
		Active:     active,
		Nav:        make([]MenuLink, 0, len(agg.Menus)),
	}

	for i := range agg.Menus {
		m := &agg.Menus[i]
		url := p.SiteRoot
		if i > 0 {
			url = MenuURL(agg.TenantKey, m.Slug, site)
		}
		p.Nav = append(p.Nav, MenuLink{
			Title:  deref(m.Title),
			URL:    url,
			Active: active != nil && active.ID == m.ID,
		})
	}

	for _, day := range menu.Weekdays {
		h, ok := agg.Restaurant.Hours[day]
		if !ok {
			continue
		}
		p.Hours = append(p.Hours, DayLine{Day: day, IsOpen: h.IsOpen, Opens: h.OpenTime, Closes: h.CloseTime})
	}

	return p, nil
}
