package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"webguard/internal/api"
	"webguard/internal/api/handler/v1handler"
	"webguard/internal/config"
	"webguard/internal/inspector"
	"webguard/internal/worker"
	"webguard/pkg/events/redisevents"
	"webguard/pkg/logger"
	"webguard/pkg/metrics"
	"webguard/pkg/quota/redisquota"
	"webguard/pkg/reputation/safebrowsing"
	"webguard/pkg/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riverqueue/river"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(ctx, deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func setupWorkers(ctx context.Context,
	cfg *config.Config,
	strg *postgres.PgSQL,
	ins inspector.Inspector) (*river.Client[pgx.Tx], func(ctx context.Context)) {
	jobs, err := worker.Start(ctx, strg.Pool, ins, worker.Options{MaxWorkers: cfg.Worker.MaxWorkers})
	if err != nil {
		logger.Fatal(ctx, "could not start workers", zap.Error(err))
	}

	return jobs, func(ctx context.Context) {
		logger.Info(ctx, "stopping workers...")
		if err := jobs.Stop(ctx); err != nil {
			logger.Error(ctx, "could not stop workers", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			rdb, closeRedis := getRedis(ctx, cfg)
			defer closeRedis()

			collectors, err := metrics.NewCollectors(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not register metrics", zap.Error(err))
			}

			ins := inspector.New(inspector.Deps{
				Storage: strg,
				Reputation: safebrowsing.New(&http.Client{}, safebrowsing.Options{
					APIKey:        cfg.Reputation.APIKey,
					Endpoint:      cfg.Reputation.Endpoint,
					ClientID:      cfg.Reputation.ClientID,
					ClientVersion: cfg.Reputation.ClientVersion,
					Timeout:       cfg.Reputation.Timeout,
				}),
				Quota:   redisquota.New(rdb, cfg.Quota.DailyLimit),
				Events:  redisevents.New(rdb),
				Metrics: collectors,
			}, inspector.NewOptions(cfg))
			if cfg.Reputation.APIKey == "" {
				logger.Warn(ctx, "reputation API key is not set, every URL check will report unknown")
			}

			jobs, stopWorkers := setupWorkers(ctx, cfg, strg, ins)

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps:    v1handler.Deps{Inspector: ins},
				Redis:   api.RedisPinger(rdb),
				Storage: strg,
				Jobs:    jobs,
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopWorkers(shutdownCtx)
		},
	}

	return cmd
}
