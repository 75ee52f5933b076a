package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/financing-schedule/internal/config"
	"github.com/iwvelando/financing-schedule/internal/quote"
	"github.com/iwvelando/financing-schedule/internal/ratesource"
	"github.com/iwvelando/financing-schedule/internal/server"
	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var serverConfigPath, address, maxUploadSize string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the financing API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfig, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				serverConfig.Address = address
			}
			if maxUploadSize != "" {
				size, err := server.ParseSize(maxUploadSize)
				if err != nil {
					return err
				}
				serverConfig.SetUploadSizeBytes(size)
			}

			logger, err := initializeLogger(serverConfig.Logging, root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			source, err := serverSource(logger, serverConfig)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, logger, serverConfig, server.NewHandler(logger, source, serverConfig.UploadSizeBytes(), version))
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	cmd.Flags().StringVar(&maxUploadSize, "max-upload-size", "", "maximum upload size override, e.g. 512K")
	return cmd
}

// serverSource builds the rate source shared by all requests from the
// configuration named in the server config, if any.
func serverSource(logger *zap.Logger, serverConfig *server.Config) (ratesource.Source, error) {
	if serverConfig.RatesConfig == "" {
		return ratesource.NewStatic(nil), nil
	}
	conf, err := config.LoadConfiguration(serverConfig.RatesConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates configuration at %s: %w", serverConfig.RatesConfig, err)
	}
	return quote.NewSource(logger, conf)
}

func runServer(ctx context.Context, logger *zap.Logger, serverConfig *server.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              serverConfig.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting financing API",
			zap.String("op", "main.serve"),
			zap.String("address", serverConfig.Address),
			zap.Int64("maxUploadSize", serverConfig.UploadSizeBytes()),
			zap.String("version", version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down financing API",
		zap.String("op", "main.serve"),
		zap.Duration("timeout", serverConfig.ShutdownAfter()),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownAfter())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
