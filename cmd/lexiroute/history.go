package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/amishk599/lexiroute/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent dispatches",
	Long:  "Lists the most recent dispatch log entries (provider, model, outcome, duration), newest first.",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

var (
	historyHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	historyCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	historyFailStyle   = historyCellStyle.Foreground(lipgloss.Color("196"))
)

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if !cfg.History.Enabled {
		fmt.Println("History is disabled (history.enabled: false).")
		return nil
	}

	hist, err := openHistory(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer hist.Close()

	records, err := hist.Recent(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No dispatches recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Provider,
			r.Model,
			r.Outcome,
			r.Duration.String(),
			r.Message,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Time", "Provider", "Model", "Outcome", "Duration", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return historyHeaderStyle
			case col == 3 && records[row].Outcome != history.OutcomeOK:
				return historyFailStyle
			default:
				return historyCellStyle
			}
		})

	fmt.Println(t)
	return nil
}
