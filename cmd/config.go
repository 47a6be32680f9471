package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	Env      string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CartTTL       time.Duration

	KafkaBrokers           []string
	KafkaOrderEventsTopic  string
	KafkaPublishTimeout    time.Duration
	CatalogURL             string
	CatalogToken           string
	CatalogTimeout         time.Duration
	JWTSecret              string
	ShippingFee            int64
	CORSAllowedOrigins     []string
	AwaitingDriverSchedule string
	AwaitingDriverAfter    time.Duration
	ShutdownTimeout        time.Duration
}

// DSN returns the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// LoadConfig reads the configuration from the environment. Variables from envFile are
// loaded first when the file exists; variables already set in the environment win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	r := envReader{}
	cfg := Config{
		HTTPPort: r.str("HTTP_PORT", "8080"),
		Env:      r.str("APP_ENV", "development"),
		LogLevel: r.str("LOG_LEVEL", "info"),

		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", "postgres"),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", "foodorder"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		RedisAddr:     r.str("REDIS_ADDR", "localhost:6379"),
		RedisPassword: r.str("REDIS_PASSWORD", ""),
		RedisDB:       r.integer("REDIS_DB", 0),
		CartTTL:       r.duration("CART_TTL", 72*time.Hour),

		KafkaBrokers:          r.list("KAFKA_BROKERS"),
		KafkaOrderEventsTopic: r.str("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
		KafkaPublishTimeout:   r.duration("KAFKA_PUBLISH_TIMEOUT", 5*time.Second),

		CatalogURL:     r.str("CATALOG_URL", ""),
		CatalogToken:   r.str("CATALOG_TOKEN", ""),
		CatalogTimeout: r.duration("CATALOG_TIMEOUT", 3*time.Second),

		JWTSecret:          r.str("JWT_SECRET", ""),
		ShippingFee:        int64(r.integer("SHIPPING_FEE", 10000)),
		CORSAllowedOrigins: r.list("CORS_ALLOWED_ORIGINS"),

		AwaitingDriverSchedule: r.str("AWAITING_DRIVER_SCHEDULE", "0 * * * * *"),
		AwaitingDriverAfter:    r.duration("AWAITING_DRIVER_AFTER", 10*time.Minute),
		ShutdownTimeout:        r.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		r.errs = append(r.errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.CatalogURL == "" {
		r.errs = append(r.errs, errors.New("CATALOG_URL is required"))
	}
	if cfg.ShippingFee <= 0 {
		r.errs = append(r.errs, fmt.Errorf("SHIPPING_FEE must be positive, got %d", cfg.ShippingFee))
	}
	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envReader collects parse errors so every bad variable is reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func (r *envReader) list(key string) []string {
	var out []string
	for _, part := range strings.Split(r.str(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
