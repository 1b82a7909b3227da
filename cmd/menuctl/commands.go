package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/menu-sites/internal/config"
	dbpkg "github.com/BruksfildServices01/menu-sites/internal/db"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/menu-sites/internal/infra/repository"
	"github.com/BruksfildServices01/menu-sites/internal/logging"
	ucSite "github.com/BruksfildServices01/menu-sites/internal/usecase/site"
	"github.com/BruksfildServices01/menu-sites/internal/view"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// Check outcomes, one per tenant.
const (
	statusOK                   = "ok"
	statusNotFound             = "not_found"
	statusOnboardingIncomplete = "onboarding_incomplete"
	statusIntegrity            = "integrity"
	statusUpstream             = "upstream"
	statusError                = "error"
)

// aggregateLoader is satisfied by *ucSite.LoadRestaurantAggregate.
type aggregateLoader interface {
	Execute(ctx context.Context, key tenant.Key) (*menu.Aggregate, error)
}

type checkResult struct {
	Tenant string `json:"tenant" yaml:"tenant"`
	Status string `json:"status" yaml:"status"`
	Menus  int    `json:"menus,omitempty" yaml:"menus,omitempty"`
	Field  string `json:"field,omitempty" yaml:"field,omitempty"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type resolveResult struct {
	Host    string      `json:"host" yaml:"host"`
	Tenant  *tenant.Key `json:"tenant" yaml:"tenant"`
	SiteURL string      `json:"site_url,omitempty" yaml:"site_url,omitempty"`
}

// ==============================
// Commands
// ==============================

func runResolve(cmd *cobra.Command, args []string) error {
	key, err := newResolver(cfg).Resolve(args[0])
	if err != nil {
		return err
	}

	out := resolveResult{Host: args[0], Tenant: key}
	if key != nil {
		out.SiteURL = view.SiteRoot(*key, siteConfig(cfg))
	}
	return render(cmd.OutOrStdout(), outputFormat, out)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if !checkAll && len(args) == 0 {
		return errors.New("name at least one host, or pass --all")
	}

	db, err := dbpkg.Open(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	repo := infraRepo.NewRestaurantGormRepository(db)

	var keys []tenant.Key
	if checkAll {
		keys, err = repo.ListTenantKeys(cmd.Context())
		if err != nil {
			return fmt.Errorf("list tenants: %w", err)
		}
	} else {
		keys, err = resolveAll(newResolver(cfg), args)
		if err != nil {
			return err
		}
	}

	results := checkTenants(cmd.Context(), newLoader(repo), keys)
	if err := render(cmd.OutOrStdout(), outputFormat, results); err != nil {
		return err
	}

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d tenants failed", failed, len(results))
	}
	return nil
}

func runSitemap(cmd *cobra.Command, args []string) error {
	key, err := newResolver(cfg).Resolve(args[0])
	if err != nil {
		return err
	}
	if key == nil {
		return fmt.Errorf("%s is not a tenant host", args[0])
	}

	db, err := dbpkg.Open(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	load := newLoader(infraRepo.NewRestaurantGormRepository(db))
	entries, err := ucSite.NewBuildSitemap(load, siteConfig(cfg)).Execute(cmd.Context(), *key)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, entries)
}

func runInvalidate(cmd *cobra.Command, args []string) error {
	if cfg.Redis.URL == "" {
		return errors.New("REDIS_URL is not set")
	}

	keys, err := resolveAll(newResolver(cfg), args)
	if err != nil {
		return err
	}

	rdb, err := cache.NewClient(cmd.Context(), cfg.Redis.URL)
	if err != nil {
		return err
	}
	defer rdb.Close()

	if err := cache.NewAggregateRedisCache(rdb, cfg.Site.CacheTTL).Invalidate(cmd.Context(), keys...); err != nil {
		return err
	}

	evicted := make([]string, 0, len(keys))
	for _, k := range keys {
		evicted = append(evicted, k.String())
	}
	return render(cmd.OutOrStdout(), outputFormat, map[string][]string{"invalidated": evicted})
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	db, err := dbpkg.Open(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
	return nil
}

// ==============================
// Helpers
// ==============================

func newResolver(c *config.Config) *tenant.Resolver {
	return tenant.NewResolver(tenant.Config{
		RootDomain:         c.Tenancy.RootDomain,
		DevOverrideHost:    c.Tenancy.DevOverrideHost,
		ReservedSubdomains: c.Tenancy.ReservedSubdomains,
		ReservedPathPrefix: c.Tenancy.ReservedPathPrefix,
	})
}

func siteConfig(c *config.Config) view.SiteConfig {
	return view.SiteConfig{RootDomain: c.Tenancy.RootDomain, Scheme: c.Site.Scheme}
}

// newLoader reads straight from the database. A check against a cached copy
// would hide rows corrupted after the entry was written.
func newLoader(repo menu.Reader) *ucSite.LoadRestaurantAggregate {
	log := logging.New(os.Stderr, logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	return ucSite.NewLoadRestaurantAggregate(repo, nil, cfg.Site.LoadTimeout, log)
}

// resolveAll maps hosts to tenant keys. Hosts that belong to the root site
// are an error here since there is nothing to load for them.
func resolveAll(r *tenant.Resolver, hosts []string) ([]tenant.Key, error) {
	keys := make([]tenant.Key, 0, len(hosts))
	for _, h := range hosts {
		key, err := r.Resolve(h)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", h, err)
		}
		if key == nil {
			return nil, fmt.Errorf("%s is not a tenant host", h)
		}
		keys = append(keys, *key)
	}
	return keys, nil
}

func checkTenants(ctx context.Context, load aggregateLoader, keys []tenant.Key) []checkResult {
	results := make([]checkResult, 0, len(keys))
	for _, key := range keys {
		agg, err := load.Execute(ctx, key)
		results = append(results, classifyCheck(key, agg, err))
	}
	return results
}

func classifyCheck(key tenant.Key, agg *menu.Aggregate, err error) checkResult {
	res := checkResult{Tenant: key.String()}

	var integrity *menu.IntegrityError
	switch {
	case err == nil:
		res.Status = statusOK
		res.Menus = len(agg.Menus)
	case errors.As(err, &integrity):
		res.Status = statusIntegrity
		res.Field = integrity.Field
		res.Reason = integrity.Reason
	case errors.Is(err, menu.ErrOnboardingIncomplete):
		res.Status = statusOnboardingIncomplete
	case errors.Is(err, menu.ErrRestaurantNotFound):
		res.Status = statusNotFound
	case errors.Is(err, menu.ErrUpstreamTimeout), errors.Is(err, menu.ErrUpstreamUnavailable):
		res.Status = statusUpstream
		res.Reason = err.Error()
	default:
		res.Status = statusError
		res.Reason = err.Error()
	}
	return res
}

// countFailed counts tenants an operator has to act on. Onboarding is the
// owner's job and does not count.
func countFailed(results []checkResult) int {
	n := 0
	for _, r := range results {
		if r.Status != statusOK && r.Status != statusOnboardingIncomplete {
			n++
		}
	}
	return n
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
