package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func constantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "constants",
		Short: "Print the legal tables of a fiscal year",
		Long: "Prints the bracket tables and rates the engine uses for --year. The YAML output can be\n" +
			"edited and passed back with --constants to model a new fiscal year.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, "warn")
			if err != nil {
				return err
			}
			defer env.close()

			out := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list"); list {
				for _, y := range env.registry.Years() {
					lc, err := env.registry.Get(y)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%d  %s\n", y, lc.Metadata.Description)
				}
				return nil
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "yaml":
				return writeYAML(out, env.constants)
			case "json":
				data, err := json.MarshalIndent(env.constants, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			default:
				return fmt.Errorf("unknown format %q (yaml, json)", format)
			}
		},
	}

	cmd.Flags().Bool("list", false, "List the available fiscal years")
	cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")

	return cmd
}
