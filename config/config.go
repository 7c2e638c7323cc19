package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Allowed storefront and admin-portal origins; "*" allows any.
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Bootstrap admin credentials, used when no AdminUser record matches.
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	AdminTokenTTLHours    int `mapstructure:"ADMIN_TOKEN_TTL_HOURS"`
	CustomerTokenTTLHours int `mapstructure:"CUSTOMER_TOKEN_TTL_HOURS"`

	ToursCacheTTLSeconds int `mapstructure:"TOURS_CACHE_TTL_SECONDS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Cloudinary credentials for tour images.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("CORS_ORIGINS", []string{"*"})
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "simba")
	viper.SetDefault("JWT_SECRET", "simba-adventures-secret-2026")
	viper.SetDefault("ADMIN_EMAIL", "admin@simba-adventures.com")
	viper.SetDefault("ADMIN_PASSWORD", "simba2026")
	viper.SetDefault("ADMIN_TOKEN_TTL_HOURS", 24)
	viper.SetDefault("CUSTOMER_TOKEN_TTL_HOURS", 7*24)
	viper.SetDefault("TOURS_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")

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

// ToursCacheTTL is the lifetime of the cached tour listing.
func ToursCacheTTL() time.Duration {
	if AppConfig.ToursCacheTTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(AppConfig.ToursCacheTTLSeconds) * time.Second
}

func AdminTokenTTL() time.Duration {
	return hoursOr(AppConfig.AdminTokenTTLHours, 24)
}

func CustomerTokenTTL() time.Duration {
	return hoursOr(AppConfig.CustomerTokenTTLHours, 7*24)
}

func hoursOr(h, fallback int) time.Duration {
	if h <= 0 {
		h = fallback
	}
	return time.Duration(h) * time.Hour
}
