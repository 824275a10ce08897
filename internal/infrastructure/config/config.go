package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// DSN renders the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode, d.MaxConns)
}

// KafkaConfig holds event publishing settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// AuthConfig holds token verification settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// SatelliteConfig holds the external vegetation provider settings. With an
// empty BaseURL the deterministic stub is used instead of the live provider.
type SatelliteConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	HTTPPort    int
	MetricsPort int
	LogLevel    string
	LogFormat   string
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Auth        AuthConfig
	Satellite   SatelliteConfig
	ServiceName string
}

// Validate panics on settings the service cannot start without.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.Auth.JWTSecret == "" {
		panic("JWT_SECRET environment variable is required")
	}
}

// Load reads configuration from the environment with local-dev defaults.
func Load() Config {
	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		MetricsPort: getEnvInt("METRICS_PORT", 9090),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "agritrust"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "agritrust"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "agritrust.events"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("JWT_TTL", 24*time.Hour),
		},
		Satellite: SatelliteConfig{
			BaseURL:    getEnv("SATELLITE_API_URL", ""),
			APIKey:     getEnv("SATELLITE_API_KEY", ""),
			Timeout:    getEnvDuration("SATELLITE_TIMEOUT", 10*time.Second),
			MaxRetries: getEnvInt("SATELLITE_MAX_RETRIES", 3),
		},
		ServiceName: "agri-credit-backend",
	}
}

// HTTPAddr is the listen address for the API server.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MetricsAddr is the listen address for the metrics endpoint.
func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
