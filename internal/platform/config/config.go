package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/srgjo27/raffle_ticket/internal/platform/database"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr    string
	StoreDriver string
	Database    database.Config

	RedisAddr string
	CacheTTL  time.Duration

	KafkaBrokers       []string
	KafkaEventsTopic   string
	KafkaPaymentsTopic string
	KafkaGroupID       string

	JWTSecret string

	TelegramToken       string
	TelegramAdminChatID int64

	SweepInterval time.Duration
	PaymentNodeID int64

	SeedDemoRaffle bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using OS environment.")
	}

	cfg := &Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		StoreDriver: getenv("STORE_DRIVER", DriverPostgres),
		Database: database.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", ""),
			DBName:   getenv("DB_NAME", "raffle_ticket"),
		},
		RedisAddr:          fmt.Sprintf("%s:%s", getenv("REDIS_HOST", "localhost"), getenv("REDIS_PORT", "6379")),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaEventsTopic:   getenv("KAFKA_EVENTS_TOPIC", "raffle.reservations"),
		KafkaPaymentsTopic: getenv("KAFKA_PAYMENTS_TOPIC", "raffle.payments.confirmed"),
		KafkaGroupID:       getenv("KAFKA_GROUP_ID", "raffle-ticket"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TelegramToken:      os.Getenv("TELEGRAM_TOKEN"),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}

	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", 0); err != nil {
		return nil, err
	}

	if cfg.PaymentNodeID, err = getInt("PAYMENT_NODE_ID", 1); err != nil {
		return nil, err
	}

	if cfg.TelegramAdminChatID, err = getInt("TELEGRAM_ADMIN_CHAT_ID", 0); err != nil {
		return nil, err
	}

	if cfg.SeedDemoRaffle, err = getBool("SEED_DEMO_RAFFLE", false); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	if c.StoreDriver != DriverPostgres && c.StoreDriver != DriverMemory {
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.PaymentNodeID < 0 || c.PaymentNodeID > 1023 {
		return fmt.Errorf("PAYMENT_NODE_ID must be within 0..1023, got %d", c.PaymentNodeID)
	}

	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return d, nil
}

func getInt(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
