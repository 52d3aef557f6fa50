package cmd

import (
	"fmt"
	"log"

	"trivia/config"
	"trivia/models"
	"trivia/services"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type app struct {
	cfg        *config.Config
	db         *gorm.DB
	redis      *redis.Client
	categories *services.CategoryService
	questions  *services.QuestionService
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if v, _ := cmd.Flags().GetString("db-driver"); v != "" {
		cfg.DBDriver = v
	}
	if v, _ := cmd.Flags().GetString("db-path"); v != "" {
		cfg.DBPath = v
	}
	return cfg
}

// openApp connects to the database, migrates it and builds the store-backed
// services shared by every subcommand.
func openApp(cfg *config.Config) (*app, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	redisClient := config.InitRedis(cfg)
	if redisClient == nil {
		log.Printf("Redis disabled, category cache off")
	}

	categories := services.NewCategoryService(db, redisClient)
	return &app{
		cfg:        cfg,
		db:         db,
		redis:      redisClient,
		categories: categories,
		questions:  services.NewQuestionService(db, categories, cfg.QuestionsPerPage),
	}, nil
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}
