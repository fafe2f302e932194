package main

import (
	"context"
	"database/sql"
	"fmt"
	root "webguard"
	"webguard/internal/config"
	"webguard/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateSettings applies the goose migrations of the settings schema.
func migrateSettings(db *sql.DB) error {
	goose.SetBaseFS(root.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect to postgres: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("could not apply settings migrations: %w", err)
	}

	return nil
}

// migrateJobs brings the River job tables to the latest version and returns
// the version reached.
func migrateJobs(ctx context.Context, db *sql.DB) (int, error) {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return 0, fmt.Errorf("could not create river migrator: %w", err)
	}

	all := migrator.AllVersions()
	latest := all[len(all)-1].Version

	existing, err := migrator.ExistingVersions(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not get existing river migrations: %w", err)
	}
	if len(existing) > 0 && existing[len(existing)-1].Version >= latest {
		return latest, nil
	}

	if _, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{
		TargetVersion: latest,
	}); err != nil {
		return 0, fmt.Errorf("could not apply river migrations: %w", err)
	}

	return latest, nil
}

// migrateCommand constructs the 'migrate' subcommand that brings the settings
// schema and the job queue tables to their latest versions.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db, ok := strg.DB.(*sql.DB)
			if !ok {
				logger.Fatal(ctx, "storage is not backed by a database handle")
			}

			if err := migrateSettings(db); err != nil {
				logger.Fatal(ctx, "could not migrate settings schema", zap.Error(err))
			}

			version, err := migrateJobs(ctx, db)
			if err != nil {
				logger.Fatal(ctx, "could not migrate job queue", zap.Error(err))
			}

			logger.Info(ctx, "database is up to date", zap.Int("riverVersion", version))
		},
	}

	return cmd
}
