package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/lexiroute/internal/explore"
	"github.com/amishk599/lexiroute/internal/model"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Analyze prompts interactively (TUI)",
	Long:  "Shows the provider picker, asks for a prompt, then shows the normalized result.",
	RunE:  runExploreCmd,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExploreCmd(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	hist, err := openHistory(cfg)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer hist.Close()

	registry := buildRegistry(cfg)
	analyzer := buildAnalyzer(cfg, hist, silentLogger())

	var providers []explore.Provider
	for _, a := range registry.Adapters() {
		providers = append(providers, explore.Provider{
			Kind:         string(a.Kind()),
			Name:         a.Name(),
			DefaultModel: a.DefaultModel(),
			HasKey:       cfg.Keys.For(string(a.Kind())) != "",
		})
	}

	return runExplore(providers, analyzer, cfg.Keys.For)
}

func runExplore(providers []explore.Provider, analyzer model.Analyzer, keyFor func(string) string) error {
	for {
		choice, err := explore.RunProviderPicker(providers)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
		if choice < 0 {
			return nil
		}
		provider := providers[choice]

		req := model.AnalysisRequest{
			Provider: provider.Kind,
			Model:    provider.DefaultModel,
			APIKey:   keyFor(provider.Kind),
		}

		for {
			fields := []explore.Field{{Label: "Model", Value: req.Model, Placeholder: provider.DefaultModel}}
			if !provider.HasKey {
				fields = append(fields, explore.Field{Label: "API key", Value: req.APIKey, Secret: true})
			}
			fields = append(fields, explore.Field{Label: "Prompt", Placeholder: "a word or sentence to analyze"})

			values, ok, err := explore.RunInput(fields)
			if err != nil {
				return fmt.Errorf("input: %w", err)
			}
			if !ok {
				break // back to the picker
			}
			req.Model = values[0]
			if !provider.HasKey {
				req.APIKey = values[1]
			}
			req.Prompt = values[len(values)-1]

			res, dispatchErr := explore.RunLoader(provider.Name, 0, func(ctx context.Context) (model.AnalysisResult, error) {
				return analyzer.Dispatch(ctx, req)
			})
			if errors.Is(dispatchErr, explore.ErrCancelled) {
				continue
			}

			action, err := explore.RunResultView(fmt.Sprintf("%s · %s", provider.Name, req.Model), res, dispatchErr)
			if err != nil {
				return fmt.Errorf("result view: %w", err)
			}
			if action == explore.ActionQuit {
				return nil
			}
			if action == explore.ActionChangeProvider {
				break
			}
		}
	}
}
