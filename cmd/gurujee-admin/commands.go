package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/app"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/seed"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/sitemap"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
)

type (
	loader func() (*config.Config, error)
	opener func(ctx context.Context, cfg *config.Config) (*app.Deps, error)
)

type cli struct {
	load     loader
	open     opener
	cfg      *config.Config
	logLevel string
	timeout  time.Duration
}

func newRootCmd(load loader, open opener) *cobra.Command {
	c := &cli{load: load, open: open}
	root := &cobra.Command{
		Use:           "gurujee-admin",
		Short:         "Maintenance jobs for the Business Gurujee directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetOutput(zapcore.AddSync(os.Stderr))
			logger.Init(c.logLevel)
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := c.load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 5*time.Minute, "Abort the job after this long")

	root.AddCommand(
		c.reindexCmd(),
		c.patchStatusCmd(),
		c.backfillSlugsCmd(),
		c.sitemapCmd(),
		c.seedCmd(),
		c.expireCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "gurujee-admin %s\n", app.Version)
			},
		},
	)
	return root
}

// run opens the backends, builds the services and hands both to job.
func (c *cli) run(cmd *cobra.Command, job func(ctx context.Context, d *app.Deps, s *app.Services) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
	defer cancel()
	d, err := c.open(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer d.Close(context.Background())
	s, err := app.NewServices(c.cfg, d)
	if err != nil {
		return err
	}
	return job(ctx, d, s)
}

func (c *cli) reindexCmd() *cobra.Command {
	var drop bool
	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Create (or rebuild with --drop) the collection indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, d *app.Deps, _ *app.Services) error {
				if d.DB == nil {
					return fmt.Errorf("reindex needs a MongoDB database")
				}
				if drop {
					if err := database.DropIndexes(ctx, d.DB); err != nil {
						return err
					}
					logger.Infof("dropped indexes")
				}
				if err := database.EnsureIndexes(ctx, d.DB); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "indexes ensured on %d collections\n", len(database.IndexSpec))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "Drop existing indexes first")
	return cmd
}

func (c *cli) patchStatusCmd() *cobra.Command {
	var from, to, category string
	cmd := &cobra.Command{
		Use:   "patch-status",
		Short: "Move every listing in one status to another",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, _ *app.Deps, s *app.Services) error {
				n, err := s.Businesses.PatchStatus(ctx, from, to, category)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated %d listing(s) from %s to %s\n", n, from, to)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "pending", "Current status")
	cmd.Flags().StringVar(&to, "to", "approved", "New status")
	cmd.Flags().StringVar(&category, "category", "", "Limit to one category (id or slug)")
	return cmd
}

func (c *cli) backfillSlugsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-slugs",
		Short: "Assign slugs to listings that lack a valid one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, _ *app.Deps, s *app.Services) error {
				n, err := s.Businesses.BackfillSlugs(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "backfilled %d slug(s)\n", n)
				return nil
			})
		},
	}
}

func (c *cli) sitemapCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write sitemap.xml for the public site",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, _ *app.Deps, s *app.Services) error {
				set, err := s.Sitemap.Build(ctx)
				if err != nil {
					return err
				}
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				if err := sitemap.Write(f, set); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d url(s) to %s\n", len(set.URLs), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "sitemap.xml", "Output file")
	return cmd
}

func (c *cli) seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create categories, plans and the admin account from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.Load(file)
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, _ *app.Deps, s *app.Services) error {
				rep, err := seed.Apply(ctx, f, s.Categories, s.Subscriptions, s.Vendors)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", rep)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "Seed file")
	return cmd
}

func (c *cli) expireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-subscriptions",
		Short: "Mark active subscriptions past their end date as expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, _ *app.Deps, s *app.Services) error {
				n, err := s.Subscriptions.ExpireDue(ctx, time.Now().UTC())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "expired %d subscription(s)\n", n)
				return nil
			})
		},
	}
}
