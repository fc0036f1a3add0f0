package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oggyb/textsms-relay/internal/cache"
	"github.com/oggyb/textsms-relay/internal/cache/redis"
	"github.com/oggyb/textsms-relay/internal/config"
	"github.com/oggyb/textsms-relay/internal/db/gormdb"
	"github.com/oggyb/textsms-relay/internal/domain/dispatch"
	"github.com/oggyb/textsms-relay/internal/handler"
	"github.com/oggyb/textsms-relay/internal/logger"
	dispatchgorm "github.com/oggyb/textsms-relay/internal/repository/gorm/dispatch"
	routes "github.com/oggyb/textsms-relay/internal/router"
	"github.com/oggyb/textsms-relay/internal/scheduler"
	"github.com/oggyb/textsms-relay/internal/server"
	"github.com/oggyb/textsms-relay/internal/service"
	"github.com/oggyb/textsms-relay/internal/textsms"
	"github.com/rs/zerolog"
)

// @title           TextSMS Relay API
// @version         1.0
// @description     REST relay for sending, scheduling and bulk-dispatching SMS through the TextSMS gateway.
// @BasePath        /
func main() {
	// Load configuration from environment/.env.
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
	mainLog := logger.Component(log, "main")

	if err := run(cfg, log); err != nil {
		mainLog.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
	mainLog.Info().Msg("shutdown complete")
}

// run wires and serves the API until SIGINT/SIGTERM. Connections opened here
// are closed on every return path.
func run(cfg *config.Config, log zerolog.Logger) error {
	mainLog := logger.Component(log, "main")

	// Cancelled on SIGINT/SIGTERM (Ctrl+C, docker stop etc.).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init cache. Left as a nil interface when disabled.
	var c cache.Cache
	if cfg.Cache.Enabled {
		rc := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rc.Close()

		if err := rc.Ping(ctx); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		c = rc
	}

	// Init audit log.
	var audit dispatch.Repository
	if cfg.Audit.Enabled {
		db, err := gormdb.New(cfg.PostgresDSN())
		if err != nil {
			return fmt.Errorf("connect db: %w", err)
		}
		defer db.Close()

		repo := dispatchgorm.NewRepository(db)
		if cfg.Audit.AutoMigrate {
			if err := repo.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate dispatches table: %w", err)
			}
		}
		audit = repo
	}

	// Init gateway client and service.
	client := textsms.NewGatewayClient(
		textsms.Credentials{
			APIKey:    cfg.TextSMS.APIKey,
			PartnerID: cfg.TextSMS.PartnerID,
			SenderID:  cfg.TextSMS.SenderID,
		},
		textsms.Endpoints{
			Send:           cfg.TextSMS.SendURL,
			Bulk:           cfg.TextSMS.BulkURL,
			DeliveryReport: cfg.TextSMS.DeliveryReportURL,
			Balance:        cfg.TextSMS.BalanceURL,
		},
		textsms.WithTimeout(cfg.TextSMS.Timeout),
		textsms.WithLogger(logger.Component(log, "textsms")),
	)
	relaySvc := service.NewRelayService(client, c, audit, logger.Component(log, "relay"))

	// The refresher only has somewhere to put the balance when the cache is on.
	var refresher scheduler.Scheduler
	if c != nil {
		refresher = scheduler.New(
			"balance-refresher",
			scheduler.JobFunc(relaySvc.RefreshBalance),
			cfg.Refresher.Interval,
			cfg.Refresher.Timeout,
			log,
		)
	}

	// HTTP dependencies & server wiring.
	deps := routes.AppDeps{
		Home:  handler.NewHomeHandler(cfg.App.Name),
		Relay: handler.NewRelayHandler(relaySvc),
		Ops:   handler.NewOpsHandler(relaySvc, refresher),
	}

	addr := cfg.Addr()
	srv := server.New(addr, deps, logger.Component(log, "http"), cfg.TextSMS.Timeout)

	serveErr := make(chan error, 1)
	go func() {
		mainLog.Info().Str("addr", addr).Msg("HTTP server listening")

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if refresher != nil && cfg.Refresher.AutoStart {
		if err := refresher.Start(); err != nil {
			mainLog.Error().Err(err).Msg("balance refresher failed to start")
		}
	}

	var runErr error
	select {
	case <-ctx.Done():
		mainLog.Info().Msg("shutdown signal received, starting graceful shutdown")
	case err := <-serveErr:
		runErr = fmt.Errorf("HTTP server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Waits for an in-flight refresh to finish or time out.
	if refresher != nil && refresher.IsRunning() {
		if err := refresher.Stop(); err != nil {
			mainLog.Error().Err(err).Msg("balance refresher could not be stopped")
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		mainLog.Error().Err(err).Msg("HTTP server graceful shutdown failed")
	} else {
		mainLog.Info().Msg("HTTP server stopped")
	}

	return runErr
}
