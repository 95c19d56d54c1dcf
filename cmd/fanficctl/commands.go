package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"fanfic/internal/auth"
	"fanfic/internal/catalog"
	"fanfic/internal/config"
	"fanfic/internal/domain/models"
	"fanfic/internal/repository/backend"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fanficctl",
		Short:         "Administer the fanfic database",
		Long:          "fanficctl manages the schema and system fandom catalog of the database selected by DB_DRIVER.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSchemaCmd(),
		newSeedCmd(),
		newDropCmd(),
		newCatalogCmd(),
		newTokenCmd(),
	)
	return rootCmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create tables and indexes if they don't exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *backend.Store, _ *slog.Logger) error {
				if err := store.EnsureSchema(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s, prefix %q)\n", store.Driver, store.Tables.Prefix)
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Upsert the embedded system fandom catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load()
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, store *backend.Store, logger *slog.Logger) error {
				if err := store.EnsureSchema(ctx); err != nil {
					return err
				}
				n, err := catalog.Seed(ctx, c, store.Fandoms, store.Tx, logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d system fandoms\n", n)
				return nil
			})
		},
	}
}

func newDropCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop every fanfic table (blocked in prod)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("refusing to drop tables without --yes")
			}

			return withStore(cmd, func(ctx context.Context, store *backend.Store, _ *slog.Logger) error {
				if err := store.DropTables(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "dropped tables with prefix %q\n", store.Tables.Prefix)
				return nil
			}, blockInProd)
		},
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the destructive operation")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the embedded system fandoms and their ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range c.Entries() {
				fmt.Fprintf(out, "%s  %-12s %s\n", entry.ID(), entry.CanonType, entry.Name)
			}
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 access token signed with JWT_SECRET (dev and test only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := blockInProd(cfg); err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			token, err := auth.IssueToken(cfg.JWTSecret, models.Identity{UserID: userID, Email: email}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "User ID to put in the subject claim (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

type storeFn func(ctx context.Context, store *backend.Store, logger *slog.Logger) error

// withStore loads config, runs the guards, opens the store and hands it to fn.
func withStore(cmd *cobra.Command, fn storeFn, guards ...func(*config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, guard := range guards {
		if err := guard(cfg); err != nil {
			return err
		}
	}

	logger := config.NewLogger(cfg, cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, store, logger)
}

func blockInProd(cfg *config.Config) error {
	if cfg.Environment == "prod" {
		return fmt.Errorf("blocked: cannot run this command in the %s environment", cfg.Environment)
	}
	return nil
}
