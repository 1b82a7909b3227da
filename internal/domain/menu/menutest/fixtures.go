// Package menutest builds persisted restaurant graphs for tests.
package menutest

import (
	"time"

	"github.com/BruksfildServices01/menu-sites/internal/models"
)

const (
	RestaurantID = "11111111-1111-1111-1111-111111111111"
	OwnerID      = "22222222-2222-2222-2222-222222222222"
	LunchID      = "33333333-0000-0000-0000-000000000001"
	DinnerID     = "33333333-0000-0000-0000-000000000002"
)

func Ptr[T any](v T) *T {
	return &v
}

// Restaurant returns "Bob's Pizza" with two menus: Lunch (position 0, slug
// "lunch") and Dinner (position 1, slug "dinner"). The Dinner menu is listed
// first to exercise ordering. Lunch holds a free item and an unpriced item.
func Restaurant() *models.Restaurant {
	return &models.Restaurant{
		ID:        RestaurantID,
		UserID:    OwnerID,
		Name:      Ptr("Bob's Pizza"),
		Address:   models.JSONB(`{"street":"1 Main St","city":"Springfield","state":"IL","zip":"62701"}`),
		Phones:    models.JSONB(`["555-0100","555-0199"]`),
		Emails:    models.JSONB(`["hello@bobspizza.test"]`),
		Hours:     models.JSONB(`{"monday":{"isOpen":true,"openTime":"11:00","closeTime":"22:00"},"sunday":{"isOpen":false,"openTime":"","closeTime":""}}`),
		Subdomain: Ptr("bobspizza"),
		CoverImage: &models.Image{
			ID:              "44444444-0000-0000-0000-000000000001",
			RestaurantID:    RestaurantID,
			URL:             "https://cdn.test/cover.webp",
			BlurPlaceholder: Ptr("data:image/webp;base64,AAAA"),
			Width:           1200,
			Height:          630,
			AccentColor:     Ptr("#aa3311"),
		},
		Menus: []models.Menu{
			Menu(DinnerID, "Dinner", "dinner", 1,
				Section("55555555-0000-0000-0000-000000000003", DinnerID, "Mains", 0,
					Item("66666666-0000-0000-0000-000000000004", DinnerID, "55555555-0000-0000-0000-000000000003", "Lasagna", Ptr(18.5), 0),
				),
			),
			Menu(LunchID, "Lunch", "lunch", 0,
				Section("55555555-0000-0000-0000-000000000002", LunchID, "Drinks", 1,
					Item("66666666-0000-0000-0000-000000000003", LunchID, "55555555-0000-0000-0000-000000000002", "Water", Ptr(0.0), 0),
				),
				Section("55555555-0000-0000-0000-000000000001", LunchID, "Slices", 0,
					Item("66666666-0000-0000-0000-000000000002", LunchID, "55555555-0000-0000-0000-000000000001", "Pepperoni", Ptr(4.25), 1),
					Item("66666666-0000-0000-0000-000000000001", LunchID, "55555555-0000-0000-0000-000000000001", "Cheese", Ptr(3.5), 0),
					Item("66666666-0000-0000-0000-000000000005", LunchID, "55555555-0000-0000-0000-000000000001", "Daily special", nil, 2),
				),
			),
		},
	}
}

func Menu(id, title, slug string, position int, sections ...models.Section) models.Menu {
	return models.Menu{
		ID:           id,
		RestaurantID: RestaurantID,
		Title:        Ptr(title),
		Slug:         Ptr(slug),
		Position:     position,
		Description:  Ptr(title + " served daily"),
		Sections:     sections,
	}
}

func Section(id, menuID, title string, position int, items ...models.MenuItem) models.Section {
	return models.Section{
		ID:           id,
		RestaurantID: RestaurantID,
		MenuID:       menuID,
		Title:        Ptr(title),
		Position:     position,
		Items:        items,
	}
}

func Item(id, menuID, sectionID, title string, price *float64, position int) models.MenuItem {
	return models.MenuItem{
		ID:           id,
		RestaurantID: RestaurantID,
		MenuID:       menuID,
		SectionID:    sectionID,
		Title:        Ptr(title),
		Price:        price,
		Description:  Ptr(title + "\nhouse recipe"),
		Position:     position,
	}
}

// Deleted marks a timestamp for soft-deleted fixtures.
func Deleted() *time.Time {
	t := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &t
}
