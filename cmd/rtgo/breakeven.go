package main

import (
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/breakeven"
	"github.com/rgehrsitz/rtgo/internal/config"
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/spf13/cobra"
)

func breakevenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the revenue or payroll at which two regimes swap places",
		Long: "Bisects monthly revenue (or payroll) for the point where the total tax of --regime\n" +
			"crosses the total of --against. Without --against every other regime is tried.\n" +
			"Revenue defaults to a tenth to ten times the scenario revenue; payroll to zero up to the revenue.",
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
			in, err := engine.Normalizer.Normalize(req)
			if err != nil {
				return fmt.Errorf("invalid scenario request: %w", err)
			}

			minValue, err := decimalFlag(cmd, "min")
			if err != nil {
				return err
			}
			maxValue, err := decimalFlag(cmd, "max")
			if err != nil {
				return err
			}
			dimension, _ := cmd.Flags().GetString("dimension")
			regime, _ := cmd.Flags().GetString("regime")
			against, _ := cmd.Flags().GetString("against")
			format, _ := cmd.Flags().GetString("format")
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (table, json)", format)
			}

			solveReq := breakeven.Request{
				Input:     in,
				Dimension: breakeven.Dimension(dimension),
				Regime:    domain.RegimeKind(regime),
				Against:   domain.RegimeKind(against),
				Min:       minValue,
				Max:       maxValue,
			}
			solver := breakeven.NewDefaultSolver(engine)
			out := cmd.OutOrStdout()

			var result any
			var table string
			if against == "" {
				multi, err := solver.Crossovers(cmd.Context(), solveReq)
				if err != nil {
					return err
				}
				result, table = multi, (&breakeven.TableFormatter{}).FormatMulti(multi)
			} else {
				single, err := solver.Solve(cmd.Context(), solveReq)
				if err != nil {
					return err
				}
				result, table = single, (&breakeven.TableFormatter{}).Format(single)
			}

			if format == "json" {
				data, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
				return nil
			}
			fmt.Fprint(out, table)
			return nil
		},
	}

	cmd.Flags().String("dimension", string(breakeven.DimensionRevenue), "Input to vary (revenue, payroll)")
	cmd.Flags().String("regime", string(domain.RegimeSimplesSingle), "Regime kind to follow")
	cmd.Flags().String("against", "", "Regime kind to compare with (default: every other regime)")
	cmd.Flags().String("min", "", "Lower bound of the search")
	cmd.Flags().String("max", "", "Upper bound of the search")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	return cmd
}
