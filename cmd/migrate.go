package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(loadConfig(cmd))
		if err != nil {
			return err
		}
		defer a.Close()

		log.Printf("Database schema is up to date (%s)", a.cfg.DBDriver)
		return nil
	},
}
