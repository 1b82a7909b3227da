package menu

import "github.com/BruksfildServices01/menu-sites/internal/domain/tenant"

// ===============================
// Validated aggregate
// ===============================

// Aggregate is the validated graph for one tenant. Menus, sections and items
// are already filtered of soft-deleted rows and sorted by position.
type Aggregate struct {
	TenantKey  tenant.Key `json:"tenant_key"`
	Restaurant Restaurant `json:"restaurant"`
	Menus      []Menu     `json:"menus"`
}

type Restaurant struct {
	ID           string              `json:"id"`
	OwnerID      string              `json:"owner_id"`
	Name         *string             `json:"name"`
	Address      *Address            `json:"address"`
	Phones       []string            `json:"phones"`
	Emails       []string            `json:"emails"`
	Hours        map[string]DayHours `json:"hours"`
	CoverImage   *Image              `json:"cover_image"`
	Subdomain    *string             `json:"subdomain"`
	CustomDomain *string             `json:"custom_domain"`
}

type Address struct {
	Street string `json:"street" validate:"max=255"`
	City   string `json:"city" validate:"max=120"`
	State  string `json:"state" validate:"max=64"`
	Zip    string `json:"zip" validate:"max=16"`
}

type DayHours struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

type Image struct {
	URL             string `json:"url" validate:"required"`
	BlurPlaceholder string `json:"blur_placeholder"`
	Width           int    `json:"width" validate:"gte=0"`
	Height          int    `json:"height" validate:"gte=0"`
	AccentColor     string `json:"accent_color"`
}

type Menu struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Position    int       `json:"position"`
	Description *string   `json:"description"`
	Sections    []Section `json:"sections"`
}

type Section struct {
	ID          string  `json:"id"`
	MenuID      string  `json:"menu_id"`
	Title       *string `json:"title"`
	Position    int     `json:"position"`
	Description *string `json:"description"`
	Items       []Item  `json:"items"`
}

type Item struct {
	ID          string   `json:"id"`
	MenuID      string   `json:"menu_id"`
	SectionID   string   `json:"section_id"`
	Title       *string  `json:"title"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Position    int      `json:"position"`
	Image       *Image   `json:"image"`
}

// Weekdays lists the accepted hours keys in calendar order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (m Menu) SlugValue() string {
	if m.Slug == nil {
		return ""
	}
	return *m.Slug
}

func (r Restaurant) DisplayName() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}

// AllPrices returns every non-null item price across all menus.
func (a *Aggregate) AllPrices() []float64 {
	var prices []float64
	for _, m := range a.Menus {
		for _, s := range m.Sections {
			for _, it := range s.Items {
				if it.Price != nil {
					prices = append(prices, *it.Price)
				}
			}
		}
	}
	return prices
}
