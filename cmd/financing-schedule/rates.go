package main

import (
	"fmt"
	"sort"

	"github.com/iwvelando/financing-schedule/internal/config"
	"github.com/iwvelando/financing-schedule/internal/ratesource"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRatesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage the financing rates shared through Redis",
	}

	push := &cobra.Command{
		Use:   "push",
		Short: "Store the configured rate table in Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(root.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", root.configPath, err)
			}
			if conf.Redis.Address == "" {
				return fmt.Errorf("redis.address is not configured in %s", root.configPath)
			}

			table, err := conf.RateTable()
			if err != nil {
				return err
			}

			logger, err := initializeLogger(conf.Logging, root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			client := ratesource.NewRedisClient(ratesource.RedisOptions{
				Address:  conf.Redis.Address,
				Password: conf.Redis.Password,
				DB:       conf.Redis.DB,
			})
			defer func() {
				_ = client.Close()
			}()
			store := ratesource.NewRedis(logger, client, conf.Redis.KeyPrefix)

			keys := make([]string, 0, len(table))
			for key := range table {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			for _, key := range keys {
				if err := store.Store(cmd.Context(), key, table[key]); err != nil {
					return err
				}
				logger.Info("stored financing rate",
					zap.String("op", "main.rates.push"),
					zap.String("key", key),
					zap.String("rate", table[key].String()),
				)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d rates at %s\n", len(keys), conf.Redis.Address)
			return nil
		},
	}

	cmd.AddCommand(push)
	return cmd
}
