package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP configuration
	HTTPAddr string

	// Session store configuration
	SessionStore string
	RedisURL     string
	BadgerPath   string
	SessionTTL   time.Duration

	// NATS configuration (events are disabled when NatsURL is empty)
	NatsURL     string
	NatsSubject string

	// Transfer configuration
	MaxTransferAmount float64

	// Service configuration
	ServiceName string
}

func Load() *Config {
	return &Config{
		// HTTP settings
		HTTPAddr: getEnv("HTTP_ADDR", ":4949"),

		// Session store settings
		SessionStore: getEnv("SESSION_STORE", "memory"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		BadgerPath:   getEnv("BADGER_PATH", "./data/sessions"),
		SessionTTL:   getDurationEnv("SESSION_TTL", 5*time.Minute),

		// NATS settings
		NatsURL:     getEnv("NATS_URL", ""),
		NatsSubject: getEnv("NATS_SUBJECT", "ussd.sessions"),

		// Transfer settings
		MaxTransferAmount: getFloatEnv("MAX_TRANSFER_AMOUNT", 100000),

		// Service settings
		ServiceName: getEnv("SERVICE_NAME", "ussdflow"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
