package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rtgo/internal/config"
	"github.com/rgehrsitz/rtgo/internal/legal"
	"github.com/rgehrsitz/rtgo/internal/tui"
)

func main() {
	root := &cobra.Command{
		Use:          "rtgo-tui [scenario-file]",
		Short:        "Interactive viewer of the ranked tax regimes of a scenario file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := args[0]
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				return fmt.Errorf("scenario file not found: %s", configPath)
			}

			year, _ := cmd.Flags().GetInt("year")
			issFile, _ := cmd.Flags().GetString("iss-table")

			model := tui.NewModel(configPath, legal.Default(), year)
			if issFile != "" {
				table, err := config.NewInputParser().LoadISSTable(issFile)
				if err != nil {
					return err
				}
				model = model.WithISSLookup(table)
			}

			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
			)

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	root.Flags().Int("year", legal.DefaultFiscalYear, "Fiscal year of the legal tables")
	root.Flags().String("iss-table", "", "YAML file with the fixed ISS per partner of each municipality")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
