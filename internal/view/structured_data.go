package view

import (
	"encoding/json"
	"strings"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
)

// Cuisine is the static servesCuisine tag of every restaurant node.
const Cuisine = "American"

// ===============================
// schema.org nodes
// ===============================

// Field order in these structs is the serialized order; together with the
// ordered slices of the aggregate this keeps the output byte-stable.

type restaurantNode struct {
	Context       string             `json:"@context"`
	Type          string             `json:"@type"`
	Name          string             `json:"name"`
	URL           string             `json:"url"`
	Image         string             `json:"image,omitempty"`
	Telephone     string             `json:"telephone,omitempty"`
	Email         string             `json:"email,omitempty"`
	PriceRange    string             `json:"priceRange,omitempty"`
	ServesCuisine string             `json:"servesCuisine"`
	Address       *postalAddress     `json:"address,omitempty"`
	OpeningHours  []openingHoursSpec `json:"openingHoursSpecification,omitempty"`
	HasMenu       []menuNode         `json:"hasMenu"`
}

type postalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry"`
}

type openingHoursSpec struct {
	Type      string `json:"@type"`
	DayOfWeek string `json:"dayOfWeek"`
	Opens     string `json:"opens"`
	Closes    string `json:"closes"`
}

type menuNode struct {
	Type           string        `json:"@type"`
	Name           string        `json:"name,omitempty"`
	Description    string        `json:"description,omitempty"`
	URL            string        `json:"url"`
	HasMenuSection []sectionNode `json:"hasMenuSection"`
}

type sectionNode struct {
	Type        string     `json:"@type"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	HasMenuItem []itemNode `json:"hasMenuItem"`
}

type itemNode struct {
	Type        string  `json:"@type"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Offers      []offer `json:"offers,omitempty"`
}

type offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
}

// StructuredData renders the schema.org Restaurant graph for the whole
// aggregate. The price range covers every priced item of every menu and is
// omitted when nothing is priced. Items without a price carry no offers.
func StructuredData(agg *menu.Aggregate, site SiteConfig) ([]byte, error) {
	r := agg.Restaurant

	node := restaurantNode{
		Context:       "https://schema.org",
		Type:          "Restaurant",
		Name:          r.DisplayName(),
		URL:           SiteRoot(agg.TenantKey, site) + "/",
		PriceRange:    menu.PriceRange(agg.AllPrices()),
		ServesCuisine: Cuisine,
		HasMenu:       make([]menuNode, 0, len(agg.Menus)),
	}
	if r.CoverImage != nil {
		node.Image = r.CoverImage.URL
	}
	if len(r.Phones) > 0 {
		node.Telephone = r.Phones[0]
	}
	if len(r.Emails) > 0 {
		node.Email = r.Emails[0]
	}
	if a := r.Address; a != nil {
		node.Address = &postalAddress{
			Type:            "PostalAddress",
			StreetAddress:   a.Street,
			AddressLocality: a.City,
			AddressRegion:   a.State,
			PostalCode:      a.Zip,
			AddressCountry:  "US",
		}
	}
	node.OpeningHours = openingHours(r.Hours)

	for _, m := range agg.Menus {
		mn := menuNode{
			Type:           "Menu",
			Name:           deref(m.Title),
			Description:    deref(m.Description),
			URL:            MenuURL(agg.TenantKey, m.Slug, site),
			HasMenuSection: make([]sectionNode, 0, len(m.Sections)),
		}
		for _, s := range m.Sections {
			if s.MenuID != m.ID {
				continue
			}
			sn := sectionNode{
				Type:        "MenuSection",
				Name:        deref(s.Title),
				Description: deref(s.Description),
				HasMenuItem: make([]itemNode, 0, len(s.Items)),
			}
			for _, it := range s.Items {
				if it.SectionID != s.ID {
					continue
				}
				in := itemNode{
					Type:        "MenuItem",
					Name:        deref(it.Title),
					Description: deref(it.Description),
				}
				if it.Image != nil {
					in.Image = it.Image.URL
				}
				if it.Price != nil {
					in.Offers = []offer{{
						Type:          "Offer",
						Price:         menu.FormatUSD(*it.Price),
						PriceCurrency: "USD",
					}}
				}
				sn.HasMenuItem = append(sn.HasMenuItem, in)
			}
			mn.HasMenuSection = append(mn.HasMenuSection, sn)
		}
		node.HasMenu = append(node.HasMenu, mn)
	}

	return json.Marshal(node)
}

func openingHours(hours map[string]menu.DayHours) []openingHoursSpec {
	var out []openingHoursSpec
	for _, day := range menu.Weekdays {
		h, ok := hours[day]
		if !ok || !h.IsOpen {
			continue
		}
		out = append(out, openingHoursSpec{
			Type:      "OpeningHoursSpecification",
			DayOfWeek: strings.ToUpper(day[:1]) + day[1:],
			Opens:     h.OpenTime,
			Closes:    h.CloseTime,
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
