package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values. It is loaded once at process start
// and handed to the composition root; services receive the values they need
// through their constructors rather than reading configuration ambiently.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Daily slot grid, partner-local time.
	SlotStartHour       int `mapstructure:"SLOT_START_HOUR"`
	SlotEndHour         int `mapstructure:"SLOT_END_HOUR"`
	SlotDurationMinutes int `mapstructure:"SLOT_DURATION_MINUTES"`

	// Upper bound on a whole search fan-out, seconds.
	SearchTimeoutSeconds int `mapstructure:"SEARCH_TIMEOUT_SECONDS"`

	// Google Calendar OAuth app credentials.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Unified multi-provider calendar API.
	UnifiedAPIBaseURL string `mapstructure:"UNIFIED_API_BASE_URL"`
	UnifiedAPIKey     string `mapstructure:"UNIFIED_API_KEY"`

	// Secret for signing calendar-connect state tokens.
	ConnectStateSecret string `mapstructure:"CONNECT_STATE_SECRET"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SLOT_START_HOUR", 9)
	viper.SetDefault("SLOT_END_HOUR", 17)
	viper.SetDefault("SLOT_DURATION_MINUTES", 60)
	viper.SetDefault("SEARCH_TIMEOUT_SECONDS", 10)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/partners/connect/callback")
	viper.SetDefault("UNIFIED_API_BASE_URL", "https://api.unified.example.com")
	viper.SetDefault("UNIFIED_API_KEY", "")
	viper.SetDefault("CONNECT_STATE_SECRET", "")

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
