package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvPort     = "PARQ_PORT"
	EnvLogLevel = "PARQ_LOG_LEVEL"

	EnvPricePerHour        = "PARQ_PRICE_PER_HOUR"
	EnvMaxReservationHours = "PARQ_MAX_RESERVATION_HOURS"

	EnvSeedDemoData = "PARQ_SEED_DEMO_DATA"
	EnvSpotsPerZone = "PARQ_SPOTS_PER_ZONE"

	EnvNotifyTimeout = "PARQ_NOTIFY_TIMEOUT"
	EnvNotifyBuffer  = "PARQ_NOTIFY_BUFFER"

	EnvKafkaBrokers = "PARQ_KAFKA_BROKERS"
	EnvKafkaTopic   = "PARQ_KAFKA_TOPIC"

	EnvRateLimitRequests = "PARQ_RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "PARQ_RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "PARQ_REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "PARQ_IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "PARQ_MAX_REQUEST_SIZE"

	EnvReadTimeout     = "PARQ_READ_TIMEOUT"
	EnvWriteTimeout    = "PARQ_WRITE_TIMEOUT"
	EnvIdleTimeout     = "PARQ_IDLE_TIMEOUT"
	EnvShutdownTimeout = "PARQ_SHUTDOWN_TIMEOUT"
)

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return fallback
	}
	return list
}
