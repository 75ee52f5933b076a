package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "financing-schedule",
		Short: "Amortization schedules and pagination windows for vehicle financing quotes.",
		Long: `financing-schedule evaluates the financing quotes of a configuration file
into French-method amortization schedules, prints the page control window used
by list screens and serves both over HTTP.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(opts.envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", constants.DefaultEnvFile, "environment file loaded before configuration")

	cmd.AddCommand(newScheduleCmd(opts), newPagesCmd(), newServeCmd(opts), newValidateCmd(opts), newRatesCmd(opts))
	return cmd
}

// loadEnv loads path into the environment. A missing file is not an error;
// variables already set are left untouched.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load environment file %s: %w", path, err)
	}
	return nil
}
