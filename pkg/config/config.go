package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"parq/pkg/logger"
)

type Config struct {
	Port string

	PricePerHour        float64
	MaxReservationHours int

	SeedDemoData bool
	SpotsPerZone int

	NotifyTimeout time.Duration
	NotifyBuffer  int

	KafkaBrokers []string
	KafkaTopic   string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		PricePerHour:        getEnvFloat(EnvPricePerHour, DefaultPricePerHour),
		MaxReservationHours: getEnvNum(EnvMaxReservationHours, DefaultMaxReservationHours),

		SeedDemoData: getEnvBool(EnvSeedDemoData, DefaultSeedDemoData),
		SpotsPerZone: getEnvNum(EnvSpotsPerZone, DefaultSpotsPerZone),

		NotifyTimeout: getEnvDuration(EnvNotifyTimeout, DefaultNotifyTimeout),
		NotifyBuffer:  getEnvNum(EnvNotifyBuffer, DefaultNotifyBuffer),

		KafkaBrokers: getEnvList(EnvKafkaBrokers, nil),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.PricePerHour < 0 {
		errors = append(errors, fmt.Sprintf("PricePerHour cannot be negative, got: %f", cfg.PricePerHour))
	}
	if cfg.MaxReservationHours < 1 {
		errors = append(errors, fmt.Sprintf("MaxReservationHours must be at least 1, got: %d", cfg.MaxReservationHours))
	}
	if cfg.SpotsPerZone < 0 {
		errors = append(errors, fmt.Sprintf("SpotsPerZone cannot be negative, got: %d", cfg.SpotsPerZone))
	}

	if cfg.NotifyTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("NotifyTimeout must be positive, got: %s", cfg.NotifyTimeout))
	}
	if cfg.NotifyBuffer < 1 {
		errors = append(errors, fmt.Sprintf("NotifyBuffer must be at least 1, got: %d", cfg.NotifyBuffer))
	}

	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		errors = append(errors, "KafkaTopic cannot be empty when brokers are configured")
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"price_per_hour", cfg.PricePerHour,
		"max_reservation_hours", cfg.MaxReservationHours,
		"seed_demo_data", cfg.SeedDemoData,
		"spots_per_zone", cfg.SpotsPerZone,
		"notify_timeout", cfg.NotifyTimeout,
		"notify_buffer", cfg.NotifyBuffer,
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"kafka_topic", cfg.KafkaTopic,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}
