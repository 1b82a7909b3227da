// Command menuctl inspects tenants from the operator's shell: host
// resolution, aggregate integrity checks, sitemaps and cache eviction.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/menu-sites/internal/config"
	"github.com/BruksfildServices01/menu-sites/internal/logging"
)

var (
	cfg          *config.Config
	outputFormat string
	checkAll     bool

	rootCmd = &cobra.Command{
		Use:           "menuctl",
		Short:         "Operate multi-tenant restaurant menu sites",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			if outputFormat != formatYAML && outputFormat != formatJSON {
				return fmt.Errorf("unknown output format %q", outputFormat)
			}
			return cfg.Validate()
		},
	}

	resolveCmd = &cobra.Command{
		Use:   "resolve <host>",
		Short: "Show which tenant key a Host header maps to",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}

	checkCmd = &cobra.Command{
		Use:   "check [host...]",
		Short: "Load and validate tenant aggregates, reporting integrity failures",
		RunE:  runCheck,
	}

	sitemapCmd = &cobra.Command{
		Use:   "sitemap <host>",
		Short: "Print the sitemap entries of a tenant",
		Args:  cobra.ExactArgs(1),
		RunE:  runSitemap,
	}

	invalidateCmd = &cobra.Command{
		Use:   "invalidate <host...>",
		Short: "Evict cached aggregates from redis",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInvalidate,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and partial unique indexes",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatYAML, "output format: yaml or json")
	checkCmd.Flags().BoolVar(&checkAll, "all", false, "check every live tenant")

	rootCmd.AddCommand(resolveCmd, checkCmd, sitemapCmd, invalidateCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log := logging.New(os.Stderr, logging.Config{Level: "error"})
		log.Error("menuctl failed", "error", err)
		stop()
		os.Exit(1)
	}
}
