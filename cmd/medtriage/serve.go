package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	medtriage "github.com/careline/medtriage"
	httpAdapter "github.com/careline/medtriage/internal/adapters/http"
	"github.com/careline/medtriage/internal/metrics"
	"github.com/careline/medtriage/pkg/adapters/memory"
	"github.com/careline/medtriage/pkg/adapters/redis"
	"github.com/careline/medtriage/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the triage HTTP server",
	Long:  `Starts the triage engine in server mode, exposing the JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Listen = listen
		}

		logger := newLogger(cfg)
		registry := prometheus.NewRegistry()
		stats := metrics.New(registry)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var store ports.SessionStore
		if cfg.Redis.Addr != "" {
			redisStore := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
				redis.WithTTL(cfg.SessionTTL))
			defer redisStore.Close()
			store = redisStore
			logger.Info("using redis session store", "addr", cfg.Redis.Addr)
		} else {
			memStore := memory.NewStore(memory.WithIdleTimeout(cfg.SessionTTL))
			memStore.StartSweeper(ctx, time.Minute)
			store = memStore
			logger.Info("using in-memory session store")
		}

		engine, err := medtriage.New(cfg.TreePath, cfg.CorpusPath,
			medtriage.WithStore(store),
			medtriage.WithLogger(logger),
			medtriage.WithMetrics(stats),
			medtriage.WithArtifact(cfg.ArtifactPath),
		)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(engine, registry, httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting triage server", "addr", srv.Addr, "tree", cfg.TreePath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("triage server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", "", "Address to listen on (overrides config)")
}
