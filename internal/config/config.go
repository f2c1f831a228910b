package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	AuthStrategy    string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string

	LoyaltyEarnRate    decimal.Decimal
	LoyaltyRedeemValue decimal.Decimal
	SKUMaxAttempts     int
	SettleMaxRetries   int

	KafkaBrokers       []string
	KafkaTopic         string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	WorkerPoolSize     int
}

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultAuthStrategy       = "jwt"
	defaultTokenTTL           = 24 * time.Hour
	defaultShutdownTimeout    = 10 * time.Second
	defaultLogLevel           = "info"
	defaultSKUMaxAttempts     = 20
	defaultSettleMaxRetries   = 3
	defaultKafkaTopic         = "pos.orders"
	defaultOutboxPollInterval = 2 * time.Second
	defaultOutboxBatchSize    = 32
	defaultWorkerPoolSize     = 4
)

var (
	defaultLoyaltyEarnRate    = decimal.NewFromInt(1)
	defaultLoyaltyRedeemValue = decimal.RequireFromString("0.01")
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AuthStrategy:       getString(lookup, "AUTH_STRATEGY", defaultAuthStrategy),
		TokenTTL:           getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
		LoyaltyEarnRate:    getDecimal(lookup, "LOYALTY_EARN_RATE", defaultLoyaltyEarnRate),
		LoyaltyRedeemValue: getDecimal(lookup, "LOYALTY_REDEEM_VALUE", defaultLoyaltyRedeemValue),
		SKUMaxAttempts:     getInt(lookup, "SKU_MAX_ATTEMPTS", defaultSKUMaxAttempts),
		SettleMaxRetries:   getInt(lookup, "SETTLE_MAX_RETRIES", defaultSettleMaxRetries),
		KafkaTopic:         getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		OutboxPollInterval: getDuration(lookup, "OUTBOX_POLL_INTERVAL", defaultOutboxPollInterval),
		OutboxBatchSize:    getInt(lookup, "OUTBOX_BATCH_SIZE", defaultOutboxBatchSize),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
	}

	fs := flag.NewFlagSet("gopos", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokersCSV         = getString(lookup, "KAFKA_BROKERS", "")
		pollIntervalStr    = cfg.OutboxPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Token strategy: jwt or hmac")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&brokersCSV, "kafka-brokers", brokersCSV, "Comma separated Kafka brokers")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "Kafka topic for order events")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent outbox publishers")
	fs.IntVar(&cfg.OutboxBatchSize, "outbox-batch", cfg.OutboxBatchSize, "Maximum events per outbox poll")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between outbox polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OutboxPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.KafkaBrokers = splitCSV(brokersCSV)
	cfg.AuthStrategy = strings.ToLower(cfg.AuthStrategy)

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = defaultOutboxBatchSize
	}

	if cfg.OutboxPollInterval <= 0 {
		cfg.OutboxPollInterval = defaultOutboxPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.SKUMaxAttempts <= 0 {
		cfg.SKUMaxAttempts = defaultSKUMaxAttempts
	}

	if cfg.SettleMaxRetries < 0 {
		cfg.SettleMaxRetries = defaultSettleMaxRetries
	}

	if !cfg.LoyaltyEarnRate.IsPositive() {
		cfg.LoyaltyEarnRate = defaultLoyaltyEarnRate
	}

	if !cfg.LoyaltyRedeemValue.IsPositive() {
		cfg.LoyaltyRedeemValue = defaultLoyaltyRedeemValue
	}

	if cfg.AuthStrategy != "jwt" && cfg.AuthStrategy != "hmac" {
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getDecimal(lookup envLookup, key string, def decimal.Decimal) decimal.Decimal {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
