package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"thumbcache/internal/handlers"
	"thumbcache/internal/logging"
	"thumbcache/internal/metrics"
	"thumbcache/internal/startup"
)

const (
	statsInterval   = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var portFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve cache entries over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime := time.Now()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if portFlag != "" {
				cfg.Port = portFlag
			}

			driver, err := ctx.newDriver()
			if err != nil {
				return err
			}

			if cfg.MetricsEnabled {
				metrics.InitializeMetrics()
			}

			h := handlers.New(handlers.Config{
				ResourceRoot: cfg.ResourceRoot,
				Collection:   cfg.Collection,
				Retry:        driver.Config().Retry,
			}, driver.Index())

			router := handlers.NewRouter(h, handlers.RouterOptions{
				MetricsEnabled:  cfg.MetricsEnabled,
				LogHealthChecks: cfg.LogHealthChecks,
			})
			startup.LogHTTPRoutes(router)

			listener, err := net.Listen("tcp", ":"+cfg.Port)
			if err != nil {
				return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
			}

			srv := &http.Server{
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 60 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			var collector *metrics.Collector
			if cfg.MetricsEnabled {
				collector = metrics.NewCollector(h, statsInterval)
				collector.Start()
			}

			startup.LogServerStarted(startup.ServerConfig{
				Port:            cfg.Port,
				MetricsEnabled:  cfg.MetricsEnabled,
				StartupDuration: time.Since(startTime),
			})

			return serve(cmd.Context(), srv, listener, collector)
		},
	}

	cmd.Flags().StringVar(&portFlag, "port", "", "Port to listen on (overrides PORT)")
	return cmd
}

// serve runs srv until ctx is canceled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, listener net.Listener, collector *metrics.Collector) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if collector != nil {
			collector.Stop()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	startup.LogShutdownInitiated(context.Cause(ctx).Error())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if collector != nil {
		startup.LogShutdownStep("Stopping metrics collector")
		collector.Stop()
		startup.LogShutdownStepComplete("Metrics collector stopped")
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("HTTP server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
	return nil
}
