package site

import (
	"context"
	"time"

	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/view"
)

type BuildSitemap struct {
	load *LoadRestaurantAggregate
	site view.SiteConfig
	now  func() time.Time
}

func NewBuildSitemap(load *LoadRestaurantAggregate, site view.SiteConfig) *BuildSitemap {
	return &BuildSitemap{load: load, site: site, now: time.Now}
}

func (uc *BuildSitemap) Execute(
	ctx context.Context,
	key tenant.Key,
) ([]view.SitemapEntry, error) {

	agg, err := uc.load.Execute(ctx, key)
	if err != nil {
		return nil, err
	}

	return view.SitemapEntries(key, agg.Menus, uc.site, uc.now()), nil
}
