package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/roster/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "roster",
	Short:   "In-memory REST server for users and cars",
	Long: `Roster serves in-memory record collections over a small REST API.
Each collection is seeded at startup and reset on restart.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file paths, merged left to right (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: ROSTER_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("env", "", "environment: dev, prod (env: ROSTER_ENV)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
