package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/oggyb/textsms-relay/internal/config"
	"github.com/oggyb/textsms-relay/internal/db/gormdb"
	"github.com/oggyb/textsms-relay/internal/logger"
	dispatchgorm "github.com/oggyb/textsms-relay/internal/repository/gorm/dispatch"
	"github.com/rs/zerolog"
)

// migrate creates or updates the dispatches table ahead of a deploy. Run it
// once and start the API replicas with AUDIT_AUTO_MIGRATE=false so they skip
// their own AutoMigrate.
func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log = logger.Component(log, "migrate")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
	log.Info().Msg("dispatches table is up to date")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gormAdapter, err := gormdb.New(cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer gormAdapter.Close()

	if err := gormAdapter.Ping(ctx); err != nil {
		return fmt.Errorf("database %q not reachable: %w", cfg.DB.Name, err)
	}
	log.Info().Str("db", cfg.DB.Name).Msg("connected to database")

	if err := dispatchgorm.NewRepository(gormAdapter).Migrate(ctx); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
