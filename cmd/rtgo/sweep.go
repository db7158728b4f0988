package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rtgo/internal/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [input-file]",
		Short: "Re-run the scenario for a range of monthly payroll values (Fator R planning)",
		Long: "Evaluates the scenario once per payroll value and reports the Fator R ratio, whether\n" +
			"Annex V activities move to Annex III, the Simples total and the best regime.\n" +
			"Without --to the range ends at 40% of the monthly revenue; without --step it has 20 intervals.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, "warn")
			if err != nil {
				return err
			}
			defer env.close()

			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine := env.engine(false)

			from, err := decimalFlag(cmd, "from")
			if err != nil {
				return err
			}
			to, err := decimalFlag(cmd, "to")
			if err != nil {
				return err
			}
			step, err := decimalFlag(cmd, "step")
			if err != nil {
				return err
			}

			if to.IsZero() {
				in, err := engine.Normalizer.Normalize(req)
				if err != nil {
					return fmt.Errorf("invalid scenario request: %w", err)
				}
				to = in.MonthlyRevenue.Mul(decimal.RequireFromString("0.4")).Round(0)
			}
			if step.IsZero() {
				step = to.Sub(from).Div(decimal.NewFromInt(20)).Round(2)
			}

			points, err := engine.SweepPayroll(cmd.Context(), req, from, to, step)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json":
				data, err := json.MarshalIndent(points, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "table":
				fmt.Fprintf(out, "%14s %9s %8s %14s  %-36s %14s\n", "Folha", "Fator R", "Anexo", "Simples", "Melhor regime", "Imposto")
				fmt.Fprintln(out, strings.Repeat("-", 102))
				for _, p := range points {
					annex := "V"
					if p.FatorR.QualifiesForAnnexIII {
						annex = "III"
					}
					fmt.Fprintf(out, "%14s %8s%% %8s %14s  %-36s %14s\n",
						p.Payroll.StringFixed(2),
						p.FatorR.Ratio.Mul(decimal.NewFromInt(100)).StringFixed(2),
						annex,
						p.SimplesTax.StringFixed(2),
						p.BestName,
						p.BestTax.StringFixed(2))
				}
			default:
				return fmt.Errorf("unknown format %q (table, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().String("from", "0", "First monthly payroll value")
	cmd.Flags().String("to", "", "Last monthly payroll value")
	cmd.Flags().String("step", "", "Payroll increment")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	return cmd
}

// decimalFlag parses a string flag as a decimal; an empty value is zero
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}
