package config

import (
	"fmt"
	"os"
	"time"

	"github.com/TheACJ/ShopWCandy/internal/paystack"
)

// Config holds all process-wide configuration, loaded once at startup.
// Secrets live here for the life of the process and must never be logged or
// echoed in responses.
type Config struct {
	// PaystackSecretKey authenticates server-to-server calls to the
	// Paystack API (transaction re-verification).
	PaystackSecretKey string
	// PaystackWebhookSecret keys the HMAC-SHA512 signature check on
	// inbound webhook deliveries.
	PaystackWebhookSecret string
	// PaystackBaseURL overrides the Paystack API endpoint; empty means
	// production.
	PaystackBaseURL string
	// VerifyTimeout bounds the outbound re-verification call.
	VerifyTimeout time.Duration

	OrdersTable      string
	PaymentsQueueURL string
}

// Load reads configuration from the environment. Missing required values
// return an error; callers treat that as fatal at startup.
func Load() (*Config, error) {
	cfg := &Config{
		PaystackSecretKey:     os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackWebhookSecret: os.Getenv("PAYSTACK_WEBHOOK_SECRET"),
		PaystackBaseURL:       os.Getenv("PAYSTACK_BASE_URL"),
		OrdersTable:           os.Getenv("ORDERS_TABLE"),
		PaymentsQueueURL:      os.Getenv("PAYMENTS_QUEUE_URL"),
		VerifyTimeout:         paystack.DefaultVerifyTimeout,
	}

	// Paystack issues one secret key; deployments that do not configure a
	// separate webhook secret sign webhooks with the API key itself.
	if cfg.PaystackWebhookSecret == "" {
		cfg.PaystackWebhookSecret = cfg.PaystackSecretKey
	}

	if v := os.Getenv("PAYSTACK_VERIFY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PAYSTACK_VERIFY_TIMEOUT %q: %w", v, err)
		}
		cfg.VerifyTimeout = d
	}

	for name, val := range map[string]string{
		"PAYSTACK_SECRET_KEY": cfg.PaystackSecretKey,
		"ORDERS_TABLE":        cfg.OrdersTable,
	} {
		if val == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	return cfg, nil
}
