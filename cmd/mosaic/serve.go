package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/mosaic"
	"github.com/aretw0/mosaic/internal/presentation/tui"
	httpAdapter "github.com/aretw0/mosaic/pkg/adapters/http"
	"github.com/aretw0/mosaic/pkg/observability"
	"github.com/aretw0/mosaic/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tiling session server",
	Long: `Starts the Mosaic engine in server mode, exposing sessions over a JSON
HTTP API plus a WebSocket endpoint for live device transports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		applyServeFlags(cmd, cfg)

		window, err := cfg.window()
		if err != nil {
			return err
		}

		store, locker, closeStore, err := buildStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		reg := prometheus.NewRegistry()
		metrics := observability.New(reg)

		engine, err := mosaic.New(mosaic.NopPolicy(),
			mosaic.WithLogger(logger),
			mosaic.WithCoincidenceWindow(window),
			mosaic.WithLifecycleHooks(metrics.Hooks()),
		)
		if err != nil {
			return err
		}

		managerOpts := []session.Option{session.WithLogger(logger)}
		if locker != nil {
			managerOpts = append(managerOpts, session.WithLocker(locker))
		}
		manager := session.NewManager(engine, store, managerOpts...)

		handler := httpAdapter.NewHandler(manager,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		)

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner()
			fmt.Printf("Starting Mosaic Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Println("Mosaic Server stopped gracefully")
			return nil
		}
	},
}

// applyServeFlags overlays explicitly set flags onto the config file values.
func applyServeFlags(cmd *cobra.Command, cfg *Config) {
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetString("port")
	}
	if cmd.Flags().Changed("window") {
		cfg.Window, _ = cmd.Flags().GetString("window")
	}
	if cmd.Flags().Changed("redis") {
		cfg.Redis.Addr, _ = cmd.Flags().GetString("redis")
	}
	if cmd.Flags().Changed("redis-prefix") {
		cfg.Redis.Prefix, _ = cmd.Flags().GetString("redis-prefix")
	}
	if cmd.Flags().Changed("redis-ttl") {
		cfg.Redis.TTL, _ = cmd.Flags().GetString("redis-ttl")
	}
	if cmd.Flags().Changed("encryption-key-file") {
		cfg.EncryptionKeyFile, _ = cmd.Flags().GetString("encryption-key-file")
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("config", "", "Path to YAML config file")
	serveCmd.Flags().String("window", "100ms", "Swipe coincidence window")
	serveCmd.Flags().String("redis", "", "Redis address (default: in-memory store)")
	serveCmd.Flags().String("redis-prefix", "mosaic:session:", "Redis key prefix")
	serveCmd.Flags().String("redis-ttl", "", "Session TTL in Redis (e.g. 24h, empty = no expiry)")
	serveCmd.Flags().String("encryption-key-file", "", "File holding a hex-encoded AES-256 key for snapshot encryption")
}
