package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"menufind/app"
	"menufind/config"
	"menufind/handlers"
	"menufind/logging"
	"menufind/worker"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "server",
		Short: "Serve the menufind search API",
		Long: `server loads configuration, wires the query pipeline, starts the cache
warmer and serves the HTTP API until SIGINT or SIGTERM.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.RequireTaxonomySource(); err != nil {
				return err
			}
			logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}

	root.Flags().StringVarP(&cfgFile, "config", "c", os.Getenv("MENUFIND_CONFIG"), "path to a YAML config file")
	return root
}

// serve runs the API until ctx is cancelled or the listener fails.
func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	warmer, err := worker.NewWarmer(a.Catalog, a.Resolver, cfg.Worker.PoolSize,
		worker.WithLogger(logger.With().Str("component", "worker").Logger()))
	if err != nil {
		return fmt.Errorf("create cache warmer: %w", err)
	}
	defer warmer.Release()
	warmerDone := worker.StartCacheWarmer(ctx, warmer, cfg.Worker.WarmInterval)

	router := handlers.NewRouter(handlers.Deps{
		Analyzer:    a.Analyzer,
		Resolver:    a.Resolver,
		Catalog:     a.Catalog,
		ClearCaches: a.ClearCaches,
		Logger:      logger,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", handlers.RequestIDHeader},
		ExposedHeaders:   []string{handlers.RequestIDHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	logger.Info().Int("port", cfg.Server.Port).Msg("server starting")
	err = srv.ListenAndServe()
	stop()
	<-warmerDone
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
