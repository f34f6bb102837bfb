package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Gateway names accepted by PAYMENT_GATEWAY.
const (
	GatewayNone        = ""
	GatewayStripe      = "stripe"
	GatewayMercadoPago = "mercadopago"
)

// Ledger names accepted by EVENT_LEDGER.
const (
	LedgerMemory   = "memory"
	LedgerRedis    = "redis"
	LedgerDynamoDB = "dynamodb"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	PublicBaseURL   string

	Gateway     string
	Currency    string
	Stripe      StripeConfig
	MercadoPago MercadoPagoConfig

	Ledger    string
	LedgerTTL time.Duration
	Redis     RedisConfig
	DynamoDB  DynamoDBConfig
}

// StripeConfig configures the Stripe checkout adapter.
type StripeConfig struct {
	SecretKey        string
	WebhookSecret    string
	WebhookTolerance time.Duration
}

// MercadoPagoConfig configures the Mercado Pago checkout adapter.
type MercadoPagoConfig struct {
	AccessToken     string
	WebhookSecret   string
	NotificationURL string
}

// RedisConfig configures the redis event ledger.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DynamoDBConfig configures the DynamoDB event ledger.
type DynamoDBConfig struct {
	Table           string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

const (
	defaultRunAddress       = ":8080"
	defaultJWTSecret        = "change-me-in-production"
	defaultTokenTTL         = 24 * time.Hour
	defaultShutdownTimeout  = 10 * time.Second
	defaultLogLevel         = "info"
	defaultPublicBaseURL    = "http://localhost:3000"
	defaultCurrency         = "usd"
	defaultWebhookTolerance = 5 * time.Minute
	defaultLedgerTTL        = 72 * time.Hour
	defaultRedisAddr        = "localhost:6379"
	defaultDynamoTable      = "gateway_events"
	defaultAWSRegion        = "us-east-1"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		PublicBaseURL:   getString(lookup, "PUBLIC_BASE_URL", defaultPublicBaseURL),
		Gateway:         getString(lookup, "PAYMENT_GATEWAY", GatewayNone),
		Currency:        getString(lookup, "PAYMENT_CURRENCY", defaultCurrency),
		Stripe: StripeConfig{
			SecretKey:        getString(lookup, "STRIPE_SECRET_KEY", ""),
			WebhookSecret:    getString(lookup, "STRIPE_WEBHOOK_SECRET", ""),
			WebhookTolerance: getDuration(lookup, "WEBHOOK_TOLERANCE", defaultWebhookTolerance),
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken:     getString(lookup, "MERCADOPAGO_ACCESS_TOKEN", ""),
			WebhookSecret:   getString(lookup, "MERCADOPAGO_WEBHOOK_SECRET", ""),
			NotificationURL: getString(lookup, "MERCADOPAGO_NOTIFICATION_URL", ""),
		},
		Ledger:    getString(lookup, "EVENT_LEDGER", LedgerMemory),
		LedgerTTL: getDuration(lookup, "EVENT_LEDGER_TTL", defaultLedgerTTL),
		Redis: RedisConfig{
			Addr:     getString(lookup, "REDIS_ADDR", defaultRedisAddr),
			Password: getString(lookup, "REDIS_PASSWORD", ""),
			DB:       getInt(lookup, "REDIS_DB", 0),
		},
		DynamoDB: DynamoDBConfig{
			Table:           getString(lookup, "DYNAMODB_TABLE", defaultDynamoTable),
			Region:          getString(lookup, "AWS_REGION", defaultAWSRegion),
			Endpoint:        getString(lookup, "DYNAMODB_ENDPOINT", ""),
			AccessKeyID:     getString(lookup, "AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString(lookup, "AWS_SECRET_ACCESS_KEY", ""),
		},
	}

	fs := flag.NewFlagSet("gigmarket", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", cfg.PublicBaseURL, "Public URL used for checkout redirects")
	fs.StringVar(&cfg.Gateway, "gateway", cfg.Gateway, "Payment gateway: stripe, mercadopago or empty")
	fs.StringVar(&cfg.Ledger, "ledger", cfg.Ledger, "Processed event ledger: memory, redis, dynamodb")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
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

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.Stripe.WebhookTolerance <= 0 {
		cfg.Stripe.WebhookTolerance = defaultWebhookTolerance
	}

	if cfg.LedgerTTL <= 0 {
		cfg.LedgerTTL = defaultLedgerTTL
	}

	cfg.Gateway = strings.ToLower(strings.TrimSpace(cfg.Gateway))
	cfg.Ledger = strings.ToLower(strings.TrimSpace(cfg.Ledger))
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	switch cfg.Gateway {
	case GatewayNone, GatewayStripe, GatewayMercadoPago:
	default:
		return nil, fmt.Errorf("unsupported payment gateway %q", cfg.Gateway)
	}

	switch cfg.Ledger {
	case LedgerMemory, LedgerRedis, LedgerDynamoDB:
	default:
		return nil, fmt.Errorf("unsupported event ledger %q", cfg.Ledger)
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
