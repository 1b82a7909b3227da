package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/middleware"
	ucSite "github.com/BruksfildServices01/menu-sites/internal/usecase/site"
	"github.com/BruksfildServices01/menu-sites/internal/view"
	"github.com/BruksfildServices01/menu-sites/internal/web"
)

const retryAfterSeconds = "5"

// SiteHandler serves the public menu site of the tenant attached to the
// request by middleware.TenantHost.
type SiteHandler struct {
	render  *ucSite.RenderMenuPage
	sitemap *ucSite.BuildSitemap
	site    view.SiteConfig
	log     *slog.Logger
}

func NewSiteHandler(
	render *ucSite.RenderMenuPage,
	sitemap *ucSite.BuildSitemap,
	site view.SiteConfig,
	log *slog.Logger,
) *SiteHandler {
	return &SiteHandler{render: render, sitemap: sitemap, site: site, log: log}
}

// ======================================================
// PAGES
// ======================================================

func (h *SiteHandler) Home(c *gin.Context) {
	h.page(c, "")
}

func (h *SiteHandler) Menu(c *gin.Context) {
	h.page(c, c.Param("menuSlug"))
}

func (h *SiteHandler) page(c *gin.Context, slug string) {
	key, ok := h.tenant(c)
	if !ok {
		return
	}

	page, err := h.render.Execute(c.Request.Context(), key, slug)
	if err != nil {
		h.fail(c, key, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	c.HTML(http.StatusOK, web.PageMenu, page)
}

// NotFound is the site engine's fallback for paths deeper than /{menuSlug}.
func (h *SiteHandler) NotFound(c *gin.Context) {
	key, ok := h.tenant(c)
	if !ok {
		return
	}
	h.fail(c, key, menu.ErrMenuNotFound)
}

// ======================================================
// CRAWLERS
// ======================================================

func (h *SiteHandler) Sitemap(c *gin.Context) {
	key, ok := h.tenant(c)
	if !ok {
		return
	}

	entries, err := h.sitemap.Execute(c.Request.Context(), key)
	if err != nil {
		h.fail(c, key, err)
		return
	}

	body, err := view.SitemapXML(entries)
	if err != nil {
		h.fail(c, key, err)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (h *SiteHandler) Robots(c *gin.Context) {
	key, ok := h.tenant(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, "User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", view.SiteRoot(key, h.site))
}

// ======================================================
// HELPERS
// ======================================================

func (h *SiteHandler) tenant(c *gin.Context) (tenant.Key, bool) {
	key, ok := middleware.TenantFrom(c.Request.Context())
	if !ok {
		c.HTML(http.StatusNotFound, web.PageNotFound, h.restaurantMissing())
		return tenant.Key{}, false
	}
	return key, true
}

func (h *SiteHandler) fail(c *gin.Context, key tenant.Key, err error) {
	switch {
	case errors.Is(err, menu.ErrMenuNotFound):
		c.HTML(http.StatusNotFound, web.PageNotFound, web.Message{
			Title:    "Menu not found",
			Message:  "This restaurant does not have a menu at that address.",
			Link:     view.SiteRoot(key, h.site) + "/",
			LinkText: "See the menu",
		})

	case menu.IsNotFound(err):
		c.HTML(http.StatusNotFound, web.PageNotFound, h.restaurantMissing())

	case errors.Is(err, menu.ErrUpstreamTimeout), errors.Is(err, menu.ErrUpstreamUnavailable):
		c.Header("Retry-After", retryAfterSeconds)
		c.HTML(http.StatusServiceUnavailable, web.PageError, web.Message{
			Title:   "Temporarily unavailable",
			Message: "We could not load this menu right now. Please try again in a moment.",
		})

	case errors.Is(err, menu.ErrDataIntegrity):
		// already logged with the failing field by the loader
		c.HTML(http.StatusInternalServerError, web.PageError, web.Message{
			Title:   "Something went wrong",
			Message: "This menu could not be displayed.",
		})

	default:
		h.log.Error("site render failed",
			slog.String("tenant_key", key.String()),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
		c.HTML(http.StatusInternalServerError, web.PageError, web.Message{
			Title:   "Something went wrong",
			Message: "This menu could not be displayed.",
		})
	}
}

func (h *SiteHandler) restaurantMissing() web.Message {
	return web.Message{
		Title:    "Restaurant not found",
		Message:  "There is no restaurant at this address.",
		Link:     fmt.Sprintf("%s://%s/", h.scheme(), h.site.RootDomain),
		LinkText: "Go to the home page",
	}
}

func (h *SiteHandler) scheme() string {
	if h.site.Scheme == "" {
		return "https"
	}
	return h.site.Scheme
}
