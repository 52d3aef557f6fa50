package cmd

import (
	"log"

	"trivia/seed"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load categories and questions from a YAML file",
	Long:  "Load categories and questions from a YAML file. Without --file the bundled starter catalog is used.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			path = cfg.SeedFile
		}

		a, err := openApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		return applySeed(cmd, a, path)
	},
}

func init() {
	seedCmd.Flags().String("file", "", "Seed file path (overrides SEED_FILE)")
}

func applySeed(cmd *cobra.Command, a *app, path string) error {
	var (
		data *seed.File
		err  error
	)
	if path == "" {
		data, err = seed.Sample()
	} else {
		data, err = seed.Load(path)
	}
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	result, err := seed.Apply(ctx, a.db, data)
	if err != nil {
		return err
	}

	if err := a.categories.InvalidateCache(ctx); err != nil {
		log.Printf("Failed to invalidate category cache: %v", err)
	}

	log.Printf("Seeded %d categories, %d questions (%d already present)", result.Categories, result.Questions, result.Skipped)
	return nil
}
