package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authentication (tokens are issued by the external identity provider;
	// we only verify them with the shared HS256 secret)
	JWTSecret string `env:"JWT_SECRET" required:"true"`

	// Redis cache
	RedisAddr       string        `env:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	GeocodeCacheTTL time.Duration `env:"GEOCODE_CACHE_TTL" default:"60s"`

	// Geocoding providers
	NominatimUserAgent string        `env:"NOMINATIM_USER_AGENT" default:"MealBridge/1.0 (http://localhost)"`
	GeocodeTimeout     time.Duration `env:"GEOCODE_TIMEOUT" default:"6s"`

	// AI intake
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" default:"gpt-4.1-mini"`

	// Object storage (image removal on listing delete is best-effort)
	StorageURL    string `env:"STORAGE_URL"`
	StorageAPIKey string `env:"STORAGE_API_KEY"`

	// Dispatcher
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" default:"10m"`
	MailAPIURL      string        `env:"MAIL_API_URL"`
	MailAPIKey      string        `env:"MAIL_API_KEY"`
	MailWorkerCount int           `env:"MAIL_WORKER_COUNT" default:"4"`
	MailBatchSize   int           `env:"MAIL_BATCH_SIZE" default:"100"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"debug"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Try to load .env file from the working directory; system env vars still
	// apply when it is absent.
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.RedisAddr, "REDIS_ADDR", "localhost:6379"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.GeocodeCacheTTL, "GEOCODE_CACHE_TTL", 60*time.Second); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.NominatimUserAgent, "NOMINATIM_USER_AGENT", "MealBridge/1.0 (http://localhost)"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.GeocodeTimeout, "GEOCODE_TIMEOUT", 6*time.Second); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.OpenAIAPIKey, "OPENAI_API_KEY", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.OpenAIModel, "OPENAI_MODEL", "gpt-4.1-mini"); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.StorageURL, "STORAGE_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.StorageAPIKey, "STORAGE_API_KEY", ""); err != nil {
		return nil, err
	}

	if err := loadEnvDuration(&config.SweepInterval, "SWEEP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.MailAPIURL, "MAIL_API_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.MailAPIKey, "MAIL_API_KEY", ""); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.MailWorkerCount, "MAIL_WORKER_COUNT", 4); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.MailBatchSize, "MAIL_BATCH_SIZE", 100); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"}); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	if c.SweepInterval < time.Minute {
		errors = append(errors, "SWEEP_INTERVAL must be at least 1m")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
