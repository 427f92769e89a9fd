// Package main implements recipectl, the operator CLI for RecipeBox databases.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath points at an optional config.yaml
	configPath string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "recipectl",
	Short: "Operator commands for the RecipeBox API",
	Long: `recipectl runs maintenance tasks against the database configured for the RecipeBox API.
It reads the same configuration file and RECIPEBOX_* environment variables as the server.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("RECIPEBOX_CONFIG"), "configuration file path")
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedAdminCmd)
}
