package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/pravinpanwar/impulse/internal/auth"
	"github.com/pravinpanwar/impulse/internal/config"
	"github.com/pravinpanwar/impulse/internal/db"
	"github.com/pravinpanwar/impulse/internal/reset"
	"github.com/pravinpanwar/impulse/internal/server"
	"github.com/pravinpanwar/impulse/internal/session"
	"github.com/pravinpanwar/impulse/internal/store"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Impulse API server",
		Long:  "Serves the HTTP API and runs the midnight rollover sweep until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "impulse.yaml", "path to Impulse config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Auth.Secret == "" {
		return fmt.Errorf("IMPULSE_JWT_SECRET must be set")
	}

	gormDB, err := connectFromConfig(cfg)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	st, err := store.New(store.Opts{DB: gormDB})
	if err != nil {
		return err
	}
	authSvc, err := auth.New(auth.Opts{
		Secret:     cfg.Auth.Secret,
		Issuer:     cfg.Auth.Issuer,
		TokenTTL:   time.Duration(cfg.Auth.TokenTTLHrs) * time.Hour,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		return err
	}
	sessions, err := session.NewManager(session.Opts{
		Backend:      st,
		Duration:     time.Duration(cfg.Session.DurationSeconds) * time.Second,
		SpinSteps:    cfg.Session.SpinSteps,
		SpinInterval: time.Duration(cfg.Session.SpinIntervalMS) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	resetter, err := reset.New(reset.Opts{Store: st})
	if err != nil {
		return err
	}

	srv, err := server.New(server.Opts{
		Store:    st,
		Auth:     authSvc,
		Sessions: sessions,
		Reset:    resetter,
	})
	if err != nil {
		return err
	}

	// Midnight sweep clears completed-today flags for everyone; the lazy
	// per-request check covers users who cross the boundary mid-session.
	runner := cron.New()
	if _, err := resetter.Schedule(runner); err != nil {
		return err
	}
	runner.Start()
	defer runner.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx, cfg.Server.Port, out)
}
