package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/lexiroute/internal/explore"
	"github.com/amishk599/lexiroute/internal/model"
)

var (
	analyzeProvider string
	analyzeModel    string
	analyzeAPIKey   string
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <prompt...>",
	Short: "Run one analysis and print the result",
	Long: "Dispatches a single prompt to the chosen provider. The API key defaults to\n" +
		"keys.<provider> from the config (or LEXIROUTE_<PROVIDER>_API_KEY).",
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeProvider, "provider", "p", "gemini", "provider id: gemini, deepseek or openrouter")
	analyzeCmd.Flags().StringVarP(&analyzeModel, "model", "m", "", "model id passed to the provider (default: the provider's suggested model)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "API key (overrides the configured key)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw JSON result")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := setupLogger(cfg.Log, debug, os.Stderr)

	hist, err := openHistory(cfg)
	if err != nil {
		logger.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer hist.Close()

	req := model.AnalysisRequest{
		Provider: analyzeProvider,
		Model:    analyzeModel,
		APIKey:   analyzeAPIKey,
		Prompt:   strings.Join(args, " "),
	}
	if req.APIKey == "" {
		req.APIKey = cfg.Keys.For(req.Provider)
	}
	if req.Model == "" {
		req.Model = buildRegistry(cfg).DefaultModel(req.Provider)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := buildAnalyzer(cfg, hist, logger).Dispatch(ctx, req)
	if err != nil {
		printAnalyzeError(os.Stdout, os.Stderr, err, analyzeJSON)
		logger.Debug("analysis failed", "kind", model.KindOf(err))
		os.Exit(1)
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Println(explore.RenderResult(res, 80))
	return nil
}

// printAnalyzeError reports a failed dispatch: as {"error": ...} on stdout in
// JSON mode, otherwise styled on stderr. A failed JSON write is reported on stderr.
func printAnalyzeError(stdout, stderr io.Writer, err error, asJSON bool) {
	if !asJSON {
		fmt.Fprintln(stderr, explore.RenderError(err))
		return
	}
	if encErr := json.NewEncoder(stdout).Encode(map[string]string{"error": err.Error()}); encErr != nil {
		fmt.Fprintf(stderr, "failed to write result: %v\n", encErr)
	}
}
