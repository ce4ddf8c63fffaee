package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	HTTPPort                    string
	DBHost                      string
	DBPort                      string
	DBUser                      string
	DBPassword                  string
	DBName                      string
	DBSslMode                   string
	KafkaHost                   string
	KafkaConsumerGroup          string
	KafkaDeliveryCompletedTopic string
	RedisAddr                   string
	RateLimitPerMinute          int64
	OutboxBatchSize             int
}

// LoadConfig reads the optional env file named by --env-file (default .env)
// and then the environment. Variables already set in the environment win
// over the file.
func LoadConfig(args []string) (Config, error) {
	flags := pflag.NewFlagSet("app", pflag.ContinueOnError)
	envFile := flags.String("env-file", ".env", "path to the env file")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*envFile); err != nil {
		slog.Warn("env file not loaded", "path", *envFile, "error", err)
	}

	cfg := Config{
		HTTPPort:                    envOr("HTTP_PORT", "8080"),
		DBHost:                      os.Getenv("DB_HOST"),
		DBPort:                      envOr("DB_PORT", "5432"),
		DBUser:                      os.Getenv("DB_USER"),
		DBPassword:                  os.Getenv("DB_PASSWORD"),
		DBName:                      os.Getenv("DB_NAME"),
		DBSslMode:                   envOr("DB_SSLMODE", "disable"),
		KafkaHost:                   os.Getenv("KAFKA_HOST"),
		KafkaConsumerGroup:          os.Getenv("KAFKA_CONSUMER_GROUP"),
		KafkaDeliveryCompletedTopic: envOr("KAFKA_DELIVERY_COMPLETED_TOPIC", "delivery.completed"),
		RedisAddr:                   os.Getenv("REDIS_ADDR"),
	}

	var err error
	if cfg.RateLimitPerMinute, err = strconv.ParseInt(envOr("RATE_LIMIT_PER_MINUTE", "60"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err)
	}
	if cfg.OutboxBatchSize, err = strconv.Atoi(envOr("OUTBOX_BATCH_SIZE", "100")); err != nil {
		return Config{}, fmt.Errorf("OUTBOX_BATCH_SIZE: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing or out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	required := []struct{ key, value string }{
		{"DB_HOST", c.DBHost},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"KAFKA_HOST", c.KafkaHost},
		{"KAFKA_CONSUMER_GROUP", c.KafkaConsumerGroup},
		{"REDIS_ADDR", c.RedisAddr},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.key))
		}
	}

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT: %q", c.HTTPPort))
	}
	if c.RateLimitPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", c.OutboxBatchSize))
	}

	return errors.Join(errs...)
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
