package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "trivia",
	Short:        "Trivia question API",
	Long:         "Trivia serves a REST API for browsing, managing and playing trivia questions.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db-driver", "", "Database driver, postgres or sqlite (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().String("db-path", "", "SQLite database file (overrides DB_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
