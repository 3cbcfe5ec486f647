package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kjunlab/authfront/internal/app"
	"github.com/kjunlab/authfront/internal/config"
	httpx "github.com/kjunlab/authfront/internal/http"
	"github.com/kjunlab/authfront/internal/observability/logger"
	"github.com/kjunlab/authfront/internal/session"
)

var configPath string

func main() {
	// .env is optional; system env always applies on top.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "authfront",
		Short: "Social login front-end service",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "config file path")

	root.AddCommand(serveCmd(), sessionCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.App.LogLevel,
				ServiceName: "authfront",
				Version:     app.Version,
			})
			defer func() { _ = logger.Sync() }()

			a, err := app.New(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpx.NewServer(cfg.Server.Addr, a.Handler)
			return httpx.Run(ctx, srv)
		},
	}
}

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the stored session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			out := map[string]any{"authenticated": store.Authenticated()}
			if p, ok := store.Provider(); ok {
				out["provider"] = p.String()
				out["providerName"] = p.DisplayName()
			}
			if u := store.User(); u != nil {
				out["user"] = u
			}
			if claims := store.Claims(); claims != nil {
				out["claims"] = claims
			}

			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored session (logout)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("session cleared")
			return nil
		},
	})

	return cmd
}

func openStore() (*session.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Config{Env: "dev", Level: "warn", ServiceName: "authfront", Version: app.Version})

	backend, err := app.NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	return session.New(backend), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the service version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("authfront", app.Version)
		},
	}
}
