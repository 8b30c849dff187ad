package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the supported providers",
	Long:  "Prints a table of provider ids, base URLs, suggested models and whether a CLI key is configured.",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	registry := buildRegistry(cfg)

	fmt.Printf("%-12s %-12s %-45s %-22s %s\n", "Provider", "Name", "Base URL", "Default model", "Key")
	fmt.Println(strings.Repeat("─", 100))

	withKey := 0
	adapters := registry.Adapters()
	for _, a := range adapters {
		key := "missing"
		if cfg.Keys.For(string(a.Kind())) != "" {
			key = "configured"
			withKey++
		}
		fmt.Printf("%-12s %-12s %-45s %-22s %s\n", a.Kind(), a.Name(), a.BaseURL(), a.DefaultModel(), key)
	}

	fmt.Printf("\nTotal: %d providers (%d with a configured key)\n", len(adapters), withKey)
	return nil
}
