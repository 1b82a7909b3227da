package site

import (
	"context"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/view"
)

type RenderMenuPage struct {
	load *LoadRestaurantAggregate
	site view.SiteConfig
}

func NewRenderMenuPage(load *LoadRestaurantAggregate, site view.SiteConfig) *RenderMenuPage {
	return &RenderMenuPage{load: load, site: site}
}

// Execute loads the tenant and projects the page for slug ("" for the
// default menu). Errors are the loader's plus menu.ErrMenuNotFound.
func (uc *RenderMenuPage) Execute(
	ctx context.Context,
	key tenant.Key,
	slug string,
) (*view.Page, error) {

	agg, err := uc.load.Execute(ctx, key)
	if err != nil {
		return nil, err
	}

	active, explicit, err := menu.SelectActiveMenu(agg, slug)
	if err != nil {
		return nil, err
	}

	return view.NewPage(agg, active, explicit, uc.site)
}
