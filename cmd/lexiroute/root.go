package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/lexiroute/internal/adapter"
	"github.com/amishk599/lexiroute/internal/config"
	"github.com/amishk599/lexiroute/internal/dispatch"
	"github.com/amishk599/lexiroute/internal/history"
	"github.com/amishk599/lexiroute/internal/model"
	"github.com/amishk599/lexiroute/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "lexiroute",
	Short: "Route word-analysis prompts to interchangeable LLM providers",
	Long: "LexiRoute forwards an analysis prompt to Gemini, DeepSeek or OpenRouter and\n" +
		"normalizes every provider's answer into one translation + keywords schema.",
	SilenceUsage: true,
	// Default to `serve` so that `lexiroute` with no args runs the HTTP service.
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: LEXIROUTE_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: --config > LEXIROUTE_CONFIG env var > ./config.yaml > env and defaults only.
func loadConfig(path string) (*config.Config, error) {
	return config.Load(config.ResolvePath(path))
}

// mustLoadConfig loads the config or exits after printing the error.
func mustLoadConfig() *config.Config {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogger(cfg config.LogConfig, dbg bool, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if dbg {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// silentLogger is used by interactive commands; any log output corrupts the TUI.
func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildRegistry(cfg *config.Config) *adapter.Registry {
	return adapter.NewRegistry(adapter.Options{
		BaseURLs: cfg.Providers.BaseURLs(),
		Referer:  cfg.Providers.OpenRouterReferer,
		Title:    cfg.Providers.OpenRouterTitle,
	}, adapter.NewHTTPClient(cfg.HTTP.Timeout))
}

// historyStore is the dispatch log plus its lifecycle hooks.
type historyStore interface {
	model.DispatchLog
	Cleanup(olderThan time.Duration) error
	Close() error
}

// openHistory opens the SQLite dispatch log, or a NopStore when history is disabled.
func openHistory(cfg *config.Config) (historyStore, error) {
	if !cfg.History.Enabled {
		return store.NewNopStore(), nil
	}
	s, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// buildAnalyzer wires registry → dispatcher → history recorder.
func buildAnalyzer(cfg *config.Config, dispatchLog model.DispatchLog, logger *slog.Logger) model.Analyzer {
	d := dispatch.NewDispatcher(buildRegistry(cfg), logger)
	return history.NewRecorder(d, dispatchLog, logger)
}
