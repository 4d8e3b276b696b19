package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"esn-planner/core/logger"
)

// Config holds every environment-driven setting of the planner.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	S3       S3Config
	Archive  ArchiveConfig
	LogLevel string
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type ArchiveConfig struct {
	Enabled bool
	// Cron is an asynq periodic spec for the monthly export archival run.
	Cron string
}

var cfg *Config

// Load reads .env (when present) and the process environment into the Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("config: no .env file, using environment only")
	}

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 7070)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "esn_planner")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("S3_REGION", "eu-west-3")
	viper.SetDefault("S3_BUCKET", "esn-planner-archives")
	viper.SetDefault("S3_ENDPOINT", "")

	viper.SetDefault("ARCHIVE_ENABLED", false)
	viper.SetDefault("ARCHIVE_CRON", "0 2 1 * *")

	cfg = &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		S3: S3Config{
			Region:          viper.GetString("S3_REGION"),
			Bucket:          viper.GetString("S3_BUCKET"),
			Endpoint:        viper.GetString("S3_ENDPOINT"),
			AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),
		},
		Archive: ArchiveConfig{
			Enabled: viper.GetBool("ARCHIVE_ENABLED"),
			Cron:    viper.GetString("ARCHIVE_CRON"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: DB_NAME must not be empty")
	}

	return cfg, nil
}

// Get returns the loaded configuration. Load must have been called first.
func Get() *Config {
	return cfg
}
