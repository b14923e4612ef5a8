package main

import (
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pravinpanwar/impulse/internal/auth"
	"github.com/pravinpanwar/impulse/internal/config"
	"github.com/pravinpanwar/impulse/internal/store"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account management commands",
	}

	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		configPath string
		username   string
		email      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long:  "Creates an account, prompting for the password without echo.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(cmd, configPath, username, email)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "impulse.yaml", "path to Impulse config file")
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	return cmd
}

func runUserCreate(cmd *cobra.Command, configPath, username, email string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Fprint(out, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if len(strings.TrimSpace(string(password))) == 0 {
		return fmt.Errorf("password is required")
	}

	gormDB, err := connectFromConfig(cfg)
	if err != nil {
		return err
	}
	st, err := store.New(store.Opts{DB: gormDB})
	if err != nil {
		return err
	}
	authSvc, err := auth.New(auth.Opts{
		Secret:     orDefault(cfg.Auth.Secret, "cli-only"),
		Issuer:     cfg.Auth.Issuer,
		TokenTTL:   time.Duration(cfg.Auth.TokenTTLHrs) * time.Hour,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		return err
	}

	hash, err := authSvc.HashPassword(string(password))
	if err != nil {
		return err
	}
	user, err := st.CreateUser(username, email, hash)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created user %s (id=%d)\n", user.Username, user.ID)
	return nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
