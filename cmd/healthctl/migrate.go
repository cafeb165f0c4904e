package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/vitaltrack/backend/internal/database"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/migrations"
)

var migrateDSN string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending Postgres migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn := migrateDSN
		if dsn == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dsn = cfg.PostgresDSN()
		}
		db, err := database.OpenSQL(cmd.Context(), dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := database.ApplySQLMigrations(cmd.Context(), db, migrations.FS)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		}
		for _, name := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", name)
		}
		return nil
	},
}

var seedFoodsCmd = &cobra.Command{
	Use:   "seed-foods",
	Short: "Copy the bundled food table into the shared catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		if err := database.RunMigrations(cmd.Context(), db); err != nil {
			return err
		}
		n, err := service.NewFoodService(db, nil, nil, "").SeedStatic(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d foods\n", n)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDSN, "dsn", "", "Postgres DSN (defaults to the DB_* environment)")
}
