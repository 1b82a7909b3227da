package menu

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

const maxSubdomainLength = 63

var hhmm = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// schema is shared by every Build call; validator.Validate is safe for
// concurrent use once configured.
var schema *validator.Validate

func init() {
	schema = validator.New(validator.WithRequiredStructEnabled())
	_ = schema.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmm.MatchString(fl.Field().String())
	})
}

const weekdayKeysTag = "dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys"

// Build converts a persisted restaurant graph into a validated Aggregate.
// Any shape mismatch is returned as *IntegrityError; nothing is coerced.
func Build(rec *models.Restaurant, key tenant.Key) (*Aggregate, error) {
	b := builder{key: key.String()}

	r := Restaurant{
		ID:           rec.ID,
		OwnerID:      rec.UserID,
		Name:         rec.Name,
		Subdomain:    rec.Subdomain,
		CustomDomain: rec.CustomDomain,
	}

	if rec.Subdomain != nil && len(*rec.Subdomain) > maxSubdomainLength {
		return nil, b.fail("restaurant.subdomain", "longer than 63 characters")
	}

	if !rec.Address.IsNull() {
		var addr Address
		if err := decodeStrict(rec.Address, &addr); err != nil {
			return nil, b.fail("restaurant.address", err.Error())
		}
		if err := schema.Struct(addr); err != nil {
			return nil, b.fail("restaurant.address", err.Error())
		}
		r.Address = &addr
	}

	phones, err := b.stringList("restaurant.phones", rec.Phones)
	if err != nil {
		return nil, err
	}
	r.Phones = phones

	emails, err := b.stringList("restaurant.emails", rec.Emails)
	if err != nil {
		return nil, err
	}
	r.Emails = emails

	hours, err := b.hours(rec.Hours)
	if err != nil {
		return nil, err
	}
	r.Hours = hours

	cover, err := b.image("restaurant.cover_image", rec.CoverImage)
	if err != nil {
		return nil, err
	}
	r.CoverImage = cover

	agg := &Aggregate{
		TenantKey:  key,
		Restaurant: r,
		Menus:      make([]Menu, 0, len(rec.Menus)),
	}

	slugs := make(map[string]struct{}, len(rec.Menus))
	for mi, m := range rec.Menus {
		if m.DeletedAt != nil {
			continue
		}
		if m.RestaurantID != rec.ID {
			return nil, b.fail(fmt.Sprintf("menus[%d].restaurant_id", mi), "belongs to another restaurant")
		}
		if m.Slug != nil {
			if _, dup := slugs[*m.Slug]; dup {
				return nil, b.fail(fmt.Sprintf("menus[%d].slug", mi), fmt.Sprintf("duplicate slug %q", *m.Slug))
			}
			slugs[*m.Slug] = struct{}{}
		}
		menu := Menu{
			ID:          m.ID,
			Title:       m.Title,
			Slug:        m.Slug,
			Position:    m.Position,
			Description: m.Description,
			Sections:    make([]Section, 0, len(m.Sections)),
		}
		for si, s := range m.Sections {
			if s.DeletedAt != nil {
				continue
			}
			if s.MenuID != m.ID {
				return nil, b.fail(fmt.Sprintf("menus[%d].sections[%d].menu_id", mi, si), "does not match owning menu")
			}
			section := Section{
				ID:          s.ID,
				MenuID:      s.MenuID,
				Title:       s.Title,
				Position:    s.Position,
				Description: s.Description,
				Items:       make([]Item, 0, len(s.Items)),
			}
			for ii, it := range s.Items {
				if it.DeletedAt != nil {
					continue
				}
				field := fmt.Sprintf("menus[%d].sections[%d].items[%d]", mi, si, ii)
				if it.SectionID != s.ID || it.MenuID != m.ID {
					return nil, b.fail(field+".section_id", "does not match owning section")
				}
				if it.Price != nil && (*it.Price < 0 || math.IsNaN(*it.Price) || math.IsInf(*it.Price, 0)) {
					return nil, b.fail(field+".price", fmt.Sprintf("invalid price %v", *it.Price))
				}
				img, err := b.image(field+".image", it.Image)
				if err != nil {
					return nil, err
				}
				section.Items = append(section.Items, Item{
					ID:          it.ID,
					MenuID:      it.MenuID,
					SectionID:   it.SectionID,
					Title:       it.Title,
					Price:       it.Price,
					Description: it.Description,
					Position:    it.Position,
					Image:       img,
				})
			}
			slices.SortStableFunc(section.Items, func(x, y Item) int { return cmp.Compare(x.Position, y.Position) })
			menu.Sections = append(menu.Sections, section)
		}
		slices.SortStableFunc(menu.Sections, func(x, y Section) int { return cmp.Compare(x.Position, y.Position) })
		agg.Menus = append(agg.Menus, menu)
	}
	slices.SortStableFunc(agg.Menus, func(x, y Menu) int { return cmp.Compare(x.Position, y.Position) })

	return agg, nil
}

type builder struct {
	key string
}

func (b builder) fail(field, reason string) error {
	return &IntegrityError{TenantKey: b.key, Field: field, Reason: reason}
}

func (b builder) stringList(field string, raw models.JSONB) ([]string, error) {
	if raw.IsNull() {
		return []string{}, nil
	}
	var out []string
	if err := decodeStrict(raw, &out); err != nil {
		return nil, b.fail(field, err.Error())
	}
	if err := schema.Var(out, "dive,max=254"); err != nil {
		return nil, b.fail(field, err.Error())
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (b builder) hours(raw models.JSONB) (map[string]DayHours, error) {
	if raw.IsNull() {
		return nil, nil
	}
	var out map[string]DayHours
	if err := decodeStrict(raw, &out); err != nil {
		return nil, b.fail("restaurant.hours", err.Error())
	}
	if err := schema.Var(out, weekdayKeysTag); err != nil {
		return nil, b.fail("restaurant.hours", "unrecognized weekday: "+err.Error())
	}
	for _, day := range Weekdays {
		h, ok := out[day]
		if !ok {
			continue
		}
		for _, f := range [...]struct{ name, value string }{
			{"openTime", h.OpenTime},
			{"closeTime", h.CloseTime},
		} {
			if f.value == "" && !h.IsOpen {
				continue
			}
			if schema.Var(f.value, "hhmm") != nil {
				return nil, b.fail("restaurant.hours."+day+"."+f.name, fmt.Sprintf("%q is not HH:MM", f.value))
			}
		}
	}
	return out, nil
}

func (b builder) image(field string, img *models.Image) (*Image, error) {
	if img == nil {
		return nil, nil
	}
	out := Image{
		URL:    strings.TrimSpace(img.URL),
		Width:  img.Width,
		Height: img.Height,
	}
	if img.BlurPlaceholder != nil {
		out.BlurPlaceholder = *img.BlurPlaceholder
	}
	if img.AccentColor != nil {
		out.AccentColor = *img.AccentColor
	}
	if err := schema.Struct(out); err != nil {
		return nil, b.fail(field, err.Error())
	}
	return &out, nil
}

func decodeStrict(raw models.JSONB, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
