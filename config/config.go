package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// DefaultJWTSecret is a placeholder; Validate refuses it once admin auth
	// is on.
	DefaultJWTSecret = "change-me-in-production"
)

type Config struct {
	Port             string
	BindAddress      string
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPath           string
	RedisEnabled     bool
	RedisHost        string
	RedisPort        string
	JWTSecret        string
	AdminUsername    string
	AdminPassword    string
	QuestionsPerPage int
	SeedFile         string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "5000"),
		BindAddress:      getEnv("BIND_ADDRESS", "localhost"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "trivia"),
		DBPassword:       getEnv("DB_PASSWORD", "trivia"),
		DBName:           getEnv("DB_NAME", "trivia"),
		DBPath:           getEnv("DB_PATH", "./data/trivia.db"),
		RedisEnabled:     getEnvBool("REDIS_ENABLED", true),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		JWTSecret:        getEnv("JWT_SECRET", DefaultJWTSecret),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		QuestionsPerPage: getEnvInt("QUESTIONS_PER_PAGE", 10),
		SeedFile:         os.Getenv("SEED_FILE"),
	}
}

// AuthEnabled reports whether mutating question routes require an admin token.
func (c *Config) AuthEnabled() bool {
	return c.AdminPassword != ""
}

// Validate reports settings the server must not start with.
func (c *Config) Validate() error {
	if c.AuthEnabled() && c.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set when ADMIN_PASSWORD is set")
	}
	return nil
}

func (c *Config) Addr() string {
	return c.BindAddress + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DBPath + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// InitRedis returns nil when Redis is disabled; callers treat a nil client as
// "no cache".
func InitRedis(cfg *Config) *redis.Client {
	if !cfg.RedisEnabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	return client
}
