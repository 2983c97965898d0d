package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	PublicBaseURL       string
	JWTSecret           string
	StripeSecretKey     string
	StripeWebhookSecret string
	KafkaBrokers        []string
	KitchenTopic        string
	MenuTopic           string
	DeliveryFee         float64
	MaxWalletBalance    float64
	MaxSingleTopUp      float64
	MinTopUpAmount      float64
	ReconcileInterval   time.Duration
	ReconcileBatch      int
	WorkerPoolSize      int
	ShutdownTimeout     time.Duration
	MaintenanceMode     bool
}

const (
	defaultRunAddress        = ":8080"
	defaultPublicBaseURL     = "http://localhost:8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultKitchenTopic      = "canteen.kitchen.orders"
	defaultMenuTopic         = "canteen.menu.availability"
	defaultDeliveryFee       = 10.0
	defaultMaxWalletBalance  = 10000
	defaultMaxSingleTopUp    = 5000
	defaultMinTopUpAmount    = 10
	defaultReconcileInterval = 30 * time.Second
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from .env, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		PublicBaseURL:       getString(lookup, "PUBLIC_BASE_URL", defaultPublicBaseURL),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		StripeSecretKey:     getString(lookup, "STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getString(lookup, "STRIPE_WEBHOOK_SECRET", ""),
		KafkaBrokers:        splitList(getString(lookup, "KAFKA_BROKERS", "")),
		KitchenTopic:        getString(lookup, "KITCHEN_TOPIC", defaultKitchenTopic),
		MenuTopic:           getString(lookup, "MENU_TOPIC", defaultMenuTopic),
		DeliveryFee:         getFloat(lookup, "DELIVERY_FEE", defaultDeliveryFee),
		MaxWalletBalance:    getFloat(lookup, "MAX_WALLET_BALANCE", defaultMaxWalletBalance),
		MaxSingleTopUp:      getFloat(lookup, "MAX_SINGLE_TOPUP", defaultMaxSingleTopUp),
		MinTopUpAmount:      getFloat(lookup, "MIN_TOPUP_AMOUNT", defaultMinTopUpAmount),
		ReconcileInterval:   getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:      getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaintenanceMode:     getBool(lookup, "MAINTENANCE_MODE", false),
	}

	fs := flag.NewFlagSet("canteen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokersStr           = strings.Join(cfg.KafkaBrokers, ",")
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", cfg.PublicBaseURL, "Public base URL for gateway callbacks")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka broker addresses")
	fs.StringVar(&cfg.KitchenTopic, "kitchen-topic", cfg.KitchenTopic, "Kafka topic for kitchen order events")
	fs.StringVar(&cfg.MenuTopic, "menu-topic", cfg.MenuTopic, "Kafka topic for menu availability events")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between gateway reconciliation polls")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum pending sessions per reconciliation poll")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.MaintenanceMode, "maintenance", cfg.MaintenanceMode, "Reject new orders")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.KafkaBrokers = splitList(brokersStr)

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
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

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DeliveryFee < 0 {
		cfg.DeliveryFee = defaultDeliveryFee
	}

	if cfg.MinTopUpAmount <= 0 || cfg.MinTopUpAmount > cfg.MaxSingleTopUp {
		return nil, fmt.Errorf("top-up bounds are inconsistent")
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

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
