package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultPricePerHour        = 1.0
	DefaultMaxReservationHours = 24

	DefaultSeedDemoData = true
	DefaultSpotsPerZone = 4

	DefaultNotifyTimeout = 2 * time.Second
	DefaultNotifyBuffer  = 16

	DefaultKafkaTopic = "parq.events"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 15 * time.Second
	DefaultIdempotencyTTL = 10 * time.Minute
	DefaultMaxRequestSize = 1 << 20

	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
)
