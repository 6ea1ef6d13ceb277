package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// StorageBackend selects the repositories: postgres or memory.
	StorageBackend string
	// DefaultCurrency is used for accounts created without one, including the
	// automatically created Maaser account.
	DefaultCurrency   string
	MaaserAccountName string

	RateLimit          string // ulule format, e.g. 100-M
	CORSAllowedOrigins []string

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	RecurringWorkers int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := fromViper(v)
	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "bolsas-app")
	v.SetDefault("STORAGE_BACKEND", StoragePostgres)
	v.SetDefault("DEFAULT_CURRENCY", "ILS")
	v.SetDefault("MAASER_ACCOUNT_NAME", "Maaser")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "bolsas")
	v.SetDefault("AMQP_QUEUE", "bolsas.import")
	v.SetDefault("RECURRING_WORKERS", 4)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		StorageBackend:     strings.ToLower(v.GetString("STORAGE_BACKEND")),
		DefaultCurrency:    strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
		MaaserAccountName:  strings.TrimSpace(v.GetString("MAASER_ACCOUNT_NAME")),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		AMQPURL:            v.GetString("AMQP_URL"),
		AMQPExchange:       v.GetString("AMQP_EXCHANGE"),
		AMQPQueue:          v.GetString("AMQP_QUEUE"),
		RecurringWorkers:   v.GetInt("RECURRING_WORKERS"),
	}
}

// Validate checks that the loaded values fit together.
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageBackend {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("PGSQL_URL is required when STORAGE_BACKEND is postgres"))
		}
	case StorageMemory:
		if c.IsProduction {
			errs = append(errs, errors.New("STORAGE_BACKEND memory is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.IsProduction && c.JWTSecret == defaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if len(c.DefaultCurrency) != 3 {
		errs = append(errs, fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter code, got %q", c.DefaultCurrency))
	}
	if c.MaaserAccountName == "" {
		errs = append(errs, errors.New("MAASER_ACCOUNT_NAME must not be empty"))
	}
	if c.RecurringWorkers < 1 {
		errs = append(errs, fmt.Errorf("RECURRING_WORKERS must be at least 1, got %d", c.RecurringWorkers))
	}
	if c.AMQPURL != "" && (c.AMQPExchange == "" || c.AMQPQueue == "") {
		errs = append(errs, errors.New("AMQP_EXCHANGE and AMQP_QUEUE are required when AMQP_URL is set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
