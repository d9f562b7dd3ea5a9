package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	SMTP        SMTPConfig
	Storage     StorageConfig
	Delivery    DeliveryConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SMTPConfig is used for the order-notification relay. Host left empty
// disables sending; checkout then falls back to the mailto: link only.
type SMTPConfig struct {
	Host       string
	Port       string
	Username   string
	Password   string
	From       string
	AdminEmail string // business inbox that receives new-order notifications
}

// StorageConfig is the blob bucket for product images and payment proofs
type StorageConfig struct {
	Dir           string // local directory backing the bucket
	PublicBaseURL string // prefix of the public URL handed back to clients
}

// DeliveryConfig holds the free-delivery threshold and flat fee, in RWF
type DeliveryConfig struct {
	FreeThreshold float64
	FlatFee       float64
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DELIVERY_FREE_THRESHOLD", "100000")
	viper.SetDefault("DELIVERY_FLAT_FEE", "5000")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "akazuba"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:       strings.TrimSpace(getEnvOrViper("SMTP_HOST", "")),
			Port:       getEnvOrViper("SMTP_PORT", "587"),
			Username:   strings.TrimSpace(getEnvOrViper("SMTP_USERNAME", "")),
			Password:   getEnvOrViper("SMTP_PASSWORD", ""),
			From:       strings.TrimSpace(getEnvOrViper("SMTP_FROM", "orders@akazubaflorist.com")),
			AdminEmail: strings.TrimSpace(getEnvOrViper("ADMIN_EMAIL", "info.akazubaflorist@gmail.com")),
		},
		Storage: StorageConfig{
			Dir:           getEnvOrViper("STORAGE_DIR", "./uploads"),
			PublicBaseURL: strings.TrimRight(getEnvOrViper("STORAGE_PUBLIC_URL", "/uploads"), "/"),
		},
		Delivery: DeliveryConfig{
			FreeThreshold: viper.GetFloat64("DELIVERY_FREE_THRESHOLD"),
			FlatFee:       viper.GetFloat64("DELIVERY_FLAT_FEE"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	if cfg.Delivery.FreeThreshold < 0 || cfg.Delivery.FlatFee < 0 {
		return nil, fmt.Errorf("delivery fee configuration must be non-negative")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
