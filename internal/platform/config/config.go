package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// RateLimit uses the limiter format, e.g. "100-M" for 100 requests per minute.
	RateLimit          string
	CORSAllowedOrigins []string

	IBANCountryCode string
	IBANBankCode    string

	BootstrapEnabled bool
	BootstrapFile    string

	ShutdownTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("IBAN_COUNTRY_CODE", "DE")
	v.SetDefault("IBAN_BANK_CODE", "12345123")
	v.SetDefault("BOOTSTRAP_ENABLED", true)
	v.SetDefault("BOOTSTRAP_FILE", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	// Environment variables override both the defaults and the .env file.
	v.AutomaticEnv()

	cfg := &Config{
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		RateLimit:        v.GetString("RATE_LIMIT"),
		IBANCountryCode:  v.GetString("IBAN_COUNTRY_CODE"),
		IBANBankCode:     v.GetString("IBAN_BANK_CODE"),
		BootstrapEnabled: v.GetBool("BOOTSTRAP_ENABLED"),
		BootstrapFile:    v.GetString("BOOTSTRAP_FILE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	shutdownStr := v.GetString("SHUTDOWN_TIMEOUT")
	shutdown, err := time.ParseDuration(shutdownStr)
	if err != nil {
		shutdown = 10 * time.Second
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdown)
	}
	cfg.ShutdownTimeout = shutdown

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}

	return cfg, nil
}
