package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/menu-sites/internal/audit"
	"github.com/BruksfildServices01/menu-sites/internal/config"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/handlers"
	"github.com/BruksfildServices01/menu-sites/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/menu-sites/internal/infra/repository"
	"github.com/BruksfildServices01/menu-sites/internal/middleware"
	ucSite "github.com/BruksfildServices01/menu-sites/internal/usecase/site"
	"github.com/BruksfildServices01/menu-sites/internal/view"
	"github.com/BruksfildServices01/menu-sites/internal/web"
)

const serviceName = "menu-sites"

// rootPaths are the root engine's own routes, kept reachable under a dev
// override host.
var rootPaths = []string{"/api", "/health", "/metrics"}

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *slog.Logger
	// Cache is nil when aggregate caching is disabled.
	Cache   *cache.AggregateRedisCache
	Objects handlers.ObjectStore
	Audit   *audit.Dispatcher
}

// NewRouter builds the root engine. Requests for tenant hosts are handed to
// the site engine before any root route matches.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	store := infraRepo.NewRestaurantGormRepository(d.DB)
	accounts := infraRepo.NewUserGormRepository(d.DB)

	var (
		aggCache    ucSite.AggregateCache
		invalidator handlers.CacheInvalidator
	)
	if d.Cache != nil {
		aggCache, invalidator = d.Cache, d.Cache
	}

	resolver := tenant.NewResolver(tenant.Config{
		RootDomain:         cfg.Tenancy.RootDomain,
		DevOverrideHost:    cfg.Tenancy.DevOverrideHost,
		ReservedSubdomains: cfg.Tenancy.ReservedSubdomains,
		ReservedPathPrefix: cfg.Tenancy.ReservedPathPrefix,
	})
	site := view.SiteConfig{RootDomain: cfg.Tenancy.RootDomain, Scheme: cfg.Site.Scheme}

	// ======================================================
	// USE CASES
	// ======================================================
	loadAggregateUC := ucSite.NewLoadRestaurantAggregate(store, aggCache, cfg.Site.LoadTimeout, d.Log)
	renderMenuPageUC := ucSite.NewRenderMenuPage(loadAggregateUC, site)
	buildSitemapUC := ucSite.NewBuildSitemap(loadAggregateUC, site)

	// ======================================================
	// HANDLERS
	// ======================================================
	siteHandler := handlers.NewSiteHandler(renderMenuPageUC, buildSitemapUC, site, d.Log)

	authHandler := handlers.NewAuthHandler(accounts, cfg)
	meHandler := handlers.NewMeHandler(accounts, store)
	restaurantHandler := handlers.NewRestaurantHandler(store, invalidator, d.Audit, cfg.Tenancy, site, d.Log)
	menuHandler := handlers.NewMenuHandler(store, invalidator, d.Audit, d.Log)
	sectionHandler := handlers.NewSectionHandler(store, invalidator, d.Audit, d.Log)
	itemHandler := handlers.NewItemHandler(store, invalidator, d.Audit, d.Log)
	imageHandler := handlers.NewImageHandler(store, d.Objects, invalidator, d.Audit, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB), store)

	// ======================================================
	// ROOT ENGINE
	// ======================================================
	r := gin.New()
	r.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		middleware.RequestLogger(d.Log),
		middleware.TenantHost(resolver, NewSiteEngine(siteHandler), rootPaths...),
		middleware.CORSMiddleware(cfg.Tenancy.RootDomain),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authLimiter := middleware.NewIPRateLimiter(rate.Every(12*time.Second), 5)
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)

		// ------------------------------
		// OWNER
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/restaurant", restaurantHandler.Get)
			secured.PATCH("/me/restaurant", restaurantHandler.Update)
			secured.DELETE("/me/restaurant", restaurantHandler.Delete)

			secured.GET("/me/menus", menuHandler.List)
			secured.POST("/me/menus", menuHandler.Create)
			secured.GET("/me/menus/:id", menuHandler.Get)
			secured.PATCH("/me/menus/:id", menuHandler.Update)
			secured.DELETE("/me/menus/:id", menuHandler.Delete)

			secured.POST("/me/menus/:id/sections", sectionHandler.Create)
			secured.PATCH("/me/sections/:id", sectionHandler.Update)
			secured.DELETE("/me/sections/:id", sectionHandler.Delete)

			secured.POST("/me/sections/:id/items", itemHandler.Create)
			secured.PATCH("/me/items/:id", itemHandler.Update)
			secured.DELETE("/me/items/:id", itemHandler.Delete)

			secured.POST("/me/images", imageHandler.Upload)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	return r
}

// NewSiteEngine serves the public pages of whichever tenant TenantHost put
// in the request context.
func NewSiteEngine(h *handlers.SiteHandler) *gin.Engine {
	s := gin.New()
	s.Use(gin.Recovery())
	s.SetHTMLTemplate(web.Templates())

	s.GET("/", h.Home)
	s.GET("/sitemap.xml", h.Sitemap)
	s.GET("/robots.txt", h.Robots)
	s.GET("/:menuSlug", h.Menu)
	s.NoRoute(h.NotFound)

	return s
}
