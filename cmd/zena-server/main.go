package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"zena/internal/config"
	"zena/internal/embedding"
	"zena/internal/routing"
	"zena/internal/server"
	"zena/internal/service"
	"zena/internal/shared/logging"
	"zena/internal/store/sqlite"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "zena-server",
		Short:        "Wellbeing decision engine: scores, alerts, recommendations and expert routing",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (optional)")

	root.AddCommand(serveCmd(), routeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewComponentLogger("main")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			st, router, err := buildEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			svc := service.New(st, router, logging.NewComponentLogger("service"))

			srv := server.New(svc, server.Config{
				ListenAddr:   cfg.ListenAddr,
				Debug:        cfg.Debug,
				EnableCORS:   true,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
			}, logging.NewComponentLogger("http"))

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				logger.Info("received %s, shutting down", sig)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(ctx)
		},
	}
}

func routeCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "route <question>",
		Short: "Route a question to an expert profile and print the decision trace",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewComponentLogger("route")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			st, router, err := buildEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			decision := router.Route(cmd.Context(), strings.Join(args, " "), userID)

			out, err := json.MarshalIndent(decision, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "subject id for the signal channel (optional)")
	return cmd
}

// buildEngine opens the store and assembles the profile router from the
// declarative configuration files.
func buildEngine(cfg config.Config, logger logging.Logger) (*sqlite.Store, *routing.Router, error) {
	st, err := sqlite.Open(cfg.DatabasePath, logging.NewComponentLogger("store"))
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	embedder, err := buildEmbedder(cfg.Embedding, logger)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	catalog, err := routing.LoadCatalog(cfg.ProfilesPath)
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("load profiles: %w", err)
	}

	routingCfg, err := routing.LoadConfig(cfg.RoutingPath, logging.NewComponentLogger("routing"))
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("load routing config: %w", err)
	}

	router := routing.NewRouter(catalog, routingCfg, embedder, st, logging.NewComponentLogger("routing"))
	return st, router, nil
}

func buildEmbedder(cfg config.EmbeddingConfig, logger logging.Logger) (embedding.Embedder, error) {
	if cfg.Offline {
		logger.Info("embedding provider: offline deterministic")
		return &embedding.Deterministic{}, nil
	}
	if cfg.APIKey == "" {
		logger.Warn("no embedding api key set, semantic routing will run degraded")
	}
	return embedding.New(embedding.Config{
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		CacheSize: cfg.CacheSize,
	})
}
