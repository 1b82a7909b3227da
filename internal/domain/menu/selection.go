package menu

// SelectActiveMenu picks the menu to render. An empty slug selects the first
// menu by position. A non-empty slug must match exactly (case-sensitive) or
// ErrMenuNotFound is returned; it never falls back to the default menu.
//
// explicit reports whether slug routing is in effect for the returned menu.
func SelectActiveMenu(agg *Aggregate, slug string) (active *Menu, explicit bool, err error) {
	if agg == nil || len(agg.Menus) == 0 {
		return nil, false, ErrOnboardingIncomplete
	}

	if slug == "" {
		return &agg.Menus[0], false, nil
	}

	for i := range agg.Menus {
		if agg.Menus[i].Slug != nil && *agg.Menus[i].Slug == slug {
			return &agg.Menus[i], true, nil
		}
	}

	return nil, false, ErrMenuNotFound
}

// IsDefault reports whether m is the positional default of agg.
func (a *Aggregate) IsDefault(m *Menu) bool {
	return m != nil && len(a.Menus) > 0 && a.Menus[0].ID == m.ID
}
