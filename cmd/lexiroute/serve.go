package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/amishk599/lexiroute/internal/observability"
	"github.com/amishk599/lexiroute/internal/scheduler"
	"github.com/amishk599/lexiroute/internal/server"
)

// cleanupInterval is how often the history retention sweep runs while serving.
const cleanupInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis endpoint",
	Long:  "Serve POST /api/analyze (path configurable); blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := setupLogger(cfg.Log, debug, os.Stdout)

	logger.Info("config loaded",
		"addr", cfg.Server.Addr,
		"path", cfg.Server.Path,
		"http_timeout", cfg.HTTP.Timeout.String(),
		"history", cfg.History.Enabled,
		"tracing", cfg.Tracing.Endpoint != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, version)
	if err != nil {
		logger.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	hist, err := openHistory(cfg)
	if err != nil {
		logger.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer hist.Close()

	srv := server.New(cfg.Server, cfg.CORS, buildAnalyzer(cfg, hist, logger), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	if cfg.History.Enabled && cfg.History.Retention > 0 {
		sched := scheduler.NewScheduler([]scheduler.Task{
			historyCleanupTask(hist, cfg.History.Retention),
		}, cleanupInterval, logger)
		g.Go(func() error {
			return sched.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}

// historyCleanupTask prunes dispatch records older than retention.
func historyCleanupTask(hist historyStore, retention time.Duration) scheduler.Task {
	return scheduler.Task{
		Name: "history-cleanup",
		Run: func(context.Context) error {
			return hist.Cleanup(retention)
		},
	}
}
