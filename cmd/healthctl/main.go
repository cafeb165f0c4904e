// Command healthctl is the operator CLI: schema migrations, catalog seeding,
// calorie goal checks and a terminal chat client.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pageza/vitaltrack/backend/config"
	"github.com/pageza/vitaltrack/backend/internal/logger"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:           "healthctl",
	Short:         "healthctl manages a VitalTrack deployment",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Config{Debug: debug, Prefix: "healthctl"})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(migrateCmd, seedFoodsCmd, goalCmd, chatCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
