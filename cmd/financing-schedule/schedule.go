package main

import (
	"fmt"

	"github.com/iwvelando/financing-schedule/internal/config"
	"github.com/iwvelando/financing-schedule/internal/quote"
	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/iwvelando/financing-schedule/pkg/output"
	"github.com/iwvelando/financing-schedule/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScheduleCmd(root *rootOptions) *cobra.Command {
	var outputFormat, quoteName string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule of every configured quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(root.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", root.configPath, err)
			}

			logger, err := initializeLogger(conf.Logging, root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// CLI override takes precedence over config
			format := conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.schedule"),
				)
			}

			quotes := conf.Quotes
			if quoteName != "" {
				quotes = nil
				for _, q := range conf.Quotes {
					if q.Name == quoteName {
						quotes = append(quotes, q)
					}
				}
				if len(quotes) == 0 {
					return fmt.Errorf("no quote named %q in %s", quoteName, root.configPath)
				}
			}

			source, err := quote.NewSource(logger, conf)
			if err != nil {
				return fmt.Errorf("failed to build rate source: %w", err)
			}

			results, err := quote.NewEvaluator(logger, source).EvaluateAll(cmd.Context(), quotes)
			if err != nil {
				return fmt.Errorf("failed to evaluate quotes: %w", err)
			}

			logger.Debug("quotes evaluated",
				zap.String("op", "main.schedule"),
				zap.Int("quotes", len(results)),
			)

			switch format {
			case constants.OutputFormatCSV:
				return output.WriteCSV(cmd.OutOrStdout(), results)
			default:
				output.WritePretty(cmd.OutOrStdout(), results)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv")
	cmd.Flags().StringVar(&quoteName, "quote", "", "only evaluate the quote with this name")
	return cmd
}
