package main

import (
	"fmt"
	"sort"

	"github.com/iwvelando/financing-schedule/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file without evaluating it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			conf, err := config.LoadConfiguration(root.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", root.configPath, err)
			}
			fmt.Fprintf(out, "✓ Loaded config with %d quotes\n", len(conf.Quotes))

			table, err := conf.RateTable()
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(table))
			for key := range table {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(out, "✓ Rate %s: %s\n", key, table[key])
			}

			for _, q := range conf.Quotes {
				if err := q.Validate(); err != nil {
					return err
				}
			}

			warnings := conf.ValidateConfiguration()
			for _, warning := range warnings {
				fmt.Fprintf(out, "⚠️  %s\n", warning)
			}
			if strict && len(warnings) > 0 {
				return fmt.Errorf("configuration has %d warnings", len(warnings))
			}

			fmt.Fprintln(out, "✅ Configuration is valid")
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}
