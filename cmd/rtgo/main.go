package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/rtgo/internal/legal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = newRootCmd()

// newRootCmd builds the command tree; tests build a fresh one per case so flag values do not leak
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rtgo",
		Short: "Brazilian tax regime comparison CLI",
		Long: "Compares MEI, Simples Nacional, Lucro Presumido, Lucro Real, Carnê-Leão and a CLT baseline\n" +
			"for the same monthly revenue and ranks them by total monthly tax.",
		SilenceUsage: true,
	}

	root.PersistentFlags().Int("year", legal.DefaultFiscalYear, "Fiscal year of the legal tables")
	root.PersistentFlags().String("constants", "", "YAML file with legal constants for one fiscal year (overrides the built-in table)")
	root.PersistentFlags().String("iss-table", "", "YAML file with the fixed ISS per partner of each municipality")
	root.PersistentFlags().Bool("debug", false, "Log engine decisions to stderr")

	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(breakevenCmd())
	root.AddCommand(constantsCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rtgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
