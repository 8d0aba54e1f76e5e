package main

import (
	"context"
	"fmt"
	"os"

	"clinic-admin/cmd/bootstrap"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinic-admin",
		Short:        "Clinic administration API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(userCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap.Load()
			if err != nil {
				return err
			}

			if runMigrations {
				if err := bootstrap.Migrate(cfg, log, "up", 0); err != nil {
					return err
				}
			}

			app, err := bootstrap.New(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			app.Run()
			return nil
		},
	}
	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap.Load()
			if err != nil {
				return err
			}
			return bootstrap.Migrate(cfg, log, "up", 0)
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap.Load()
			if err != nil {
				return err
			}
			return bootstrap.Migrate(cfg, log, "down", steps)
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the applied migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap.Load()
			if err != nil {
				return err
			}
			version, dirty, ok, err := bootstrap.MigrationVersion(cfg, log)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}

	cmd.AddCommand(upCmd, downCmd, versionCmd)
	return cmd
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}

	var req dto.CreateUserRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validator.NewValidator().Validate(&req); err != nil {
				return fmt.Errorf("invalid user: %w", err)
			}

			cfg, log, err := bootstrap.Load()
			if err != nil {
				return err
			}
			app, err := bootstrap.New(cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.Usecases.Auth.CreateUser(context.Background(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&req.Email, "email", "", "login email")
	createCmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	createCmd.Flags().StringVar(&req.FullName, "name", "", "full name")
	createCmd.Flags().StringVar(&req.Role, "role", "receptionist", "admin, receptionist or doctor")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")
	_ = createCmd.MarkFlagRequired("name")

	cmd.AddCommand(createCmd)
	return cmd
}
