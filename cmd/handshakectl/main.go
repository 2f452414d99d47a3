package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/config"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/database"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/mailer"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debugf(".env not loaded: %v", err)
	}

	root := &cobra.Command{
		Use:   "handshakectl",
		Short: "Operational tooling for the marketplace backend",
	}

	root.AddCommand(
		migrateCmd(),
		seedCmd(),
		createAdminCmd(),
		testEmailCmd(),
		diagnoseEmailCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func connect(ctx context.Context, cfg *config.AppConfig) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return database.Connect(ctx, cfg.DatabaseURL)
}

func migrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations (or roll one back with --down)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if down {
				if err := database.Rollback(cfg.DatabaseURL); err != nil {
					return err
				}
				fmt.Println("rolled back one migration")
				return nil
			}
			if err := database.Migrate(cfg.DatabaseURL); err != nil {
				return err
			}
			fmt.Println("schema is up to date")
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert development fixture data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			pool, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			if err := seedFixtures(ctx, pool); err != nil {
				return err
			}
			fmt.Println("fixtures inserted")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var email, username, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || username == "" || password == "" {
				return fmt.Errorf("--email, --username and --password are required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			pool, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			hash, err := security.NewBcryptService().Hash(password)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			var id string
			err = pool.QueryRow(ctx, `
				INSERT INTO users (email, username, password_hash, user_type, is_staff, is_verified)
				VALUES ($1, $2, $3, 'client', true, true)
				RETURNING id::text
			`, email, username, hash).Scan(&id)
			if err != nil {
				return err
			}
			fmt.Printf("staff account %s created (%s)\n", username, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func testEmailCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Send a probe message through the configured SMTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return fmt.Errorf("--to is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			m := mailer.New(cfg.SMTP)
			err = m.Send(to, "SMTP probe",
				"This is a test message confirming outbound email works.",
				"<p>This is a test message confirming outbound email works.</p>")
			if err != nil {
				fmt.Println("probe failed:", err)
				fmt.Println("run `handshakectl diagnose-email` for configuration findings")
				return err
			}
			fmt.Println("probe sent to", to)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	return cmd
}

func diagnoseEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose-email",
		Short: "Inspect the SMTP configuration for common misconfigurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, finding := range mailer.New(cfg.SMTP).Diagnose() {
				fmt.Println("-", finding)
			}
			return nil
		},
	}
}
