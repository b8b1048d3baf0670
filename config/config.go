package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort      string `mapstructure:"APP_PORT"`
	Env          string `mapstructure:"ENV"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisLimiterDB int    `mapstructure:"REDIS_LIMITER_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Global per-IP throttle.
	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Per-caller ceiling on overlap queries (fixed window).
	OverlapWindowMax     int `mapstructure:"OVERLAP_WINDOW_MAX"`
	OverlapWindowSeconds int `mapstructure:"OVERLAP_WINDOW_SECONDS"`

	// Overlap query bounds.
	MaxQueryUsers       int `mapstructure:"MAX_QUERY_USERS"`
	DefaultMinFreeUsers int `mapstructure:"DEFAULT_MIN_FREE_USERS"`
	MaxMinFreeUsers     int `mapstructure:"MAX_MIN_FREE_USERS"`
	MaxRangeDays        int `mapstructure:"MAX_RANGE_DAYS"`

	// Retention sweep for long-expired blocks.
	BlockRetentionDays int `mapstructure:"BLOCK_RETENTION_DAYS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "whenfree")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LIMITER_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("OVERLAP_WINDOW_MAX", 60)
	viper.SetDefault("OVERLAP_WINDOW_SECONDS", 60)
	viper.SetDefault("MAX_QUERY_USERS", 10)
	viper.SetDefault("DEFAULT_MIN_FREE_USERS", 2)
	viper.SetDefault("MAX_MIN_FREE_USERS", 10)
	viper.SetDefault("MAX_RANGE_DAYS", 62)
	viper.SetDefault("BLOCK_RETENTION_DAYS", 90)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
