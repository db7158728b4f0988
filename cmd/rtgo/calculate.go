package main

import (
	"fmt"
	"io"

	"github.com/rgehrsitz/rtgo/internal/compare"
	"github.com/rgehrsitz/rtgo/internal/config"
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/rgehrsitz/rtgo/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate and rank every tax regime for a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			env, err := loadEnvironment(cmd, "warn")
			if err != nil {
				return err
			}
			defer env.close()

			req, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			parallel, _ := cmd.Flags().GetBool("parallel")
			engine := env.engine(parallel)

			report, err := engine.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			base, _ := cmd.Flags().GetString("base")
			out := cmd.OutOrStdout()

			switch format {
			case "report":
				fmt.Fprint(out, (&compare.TableFormatter{}).FormatReport(report))
				return nil
			case "json":
				data, err := (&compare.JSONFormatter{Pretty: true}).FormatReport(report)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
				return nil
			case "yaml":
				return writeYAML(out, report)
			case "table", "csv", "compare-json", "html":
			default:
				return fmt.Errorf("unknown format %q (table, report, json, yaml, csv, compare-json, html)", format)
			}

			compSet, err := compare.NewCompareEngine(engine).FromReport(report, compare.CompareOptions{
				BaseKind:   domain.RegimeKind(base),
				ConfigPath: inputFile,
			})
			if err != nil {
				return err
			}

			switch format {
			case "csv":
				data, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprint(out, data)
			case "html":
				data, err := output.HTMLFormatter{}.Format(report, compSet)
				if err != nil {
					return err
				}
				if _, err := out.Write(data); err != nil {
					return err
				}
			case "compare-json":
				data, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
			default:
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, report, json, yaml, csv, compare-json, html)")
	cmd.Flags().String("base", "", "Regime kind to compare against (default: the best ranked scenario)")
	cmd.Flags().Bool("parallel", false, "Evaluate the regimes concurrently")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			env, err := loadEnvironment(cmd, "warn")
			if err != nil {
				return err
			}
			defer env.close()

			req, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			in, err := env.engine(false).Normalizer.Normalize(req)
			if err != nil {
				return fmt.Errorf("invalid scenario request: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid: %d activit(ies), monthly revenue R$ %s, RBT12 R$ %s\n",
				inputFile, len(in.Activities), in.MonthlyRevenue.StringFixed(2), in.RBT12.StringFixed(2))
			return nil
		},
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
