package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort string
	LogLevel slog.Level

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr empty keeps stock in process memory.
	RedisAddr string
	// AMQPURL empty disables transition events.
	AMQPURL      string
	AMQPExchange string

	Timings              services.Timings
	OrderAdvanceSchedule string
	SeedDemo             bool
}

// LoadConfig reads every key through getenv. Unset optional keys fall back
// to defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:             withDefault(getenv("HTTP_PORT"), "8082"),
		DBHost:               getenv("DB_HOST"),
		DBPort:               withDefault(getenv("DB_PORT"), "5432"),
		DBUser:               getenv("DB_USER"),
		DBPassword:           getenv("DB_PASSWORD"),
		DBName:               getenv("DB_NAME"),
		DBSslMode:            withDefault(getenv("DB_SSLMODE"), "disable"),
		RedisAddr:            getenv("REDIS_ADDR"),
		AMQPURL:              getenv("AMQP_URL"),
		AMQPExchange:         withDefault(getenv("AMQP_EXCHANGE"), "fulfillment"),
		Timings:              services.DefaultTimings(),
		OrderAdvanceSchedule: withDefault(getenv("ORDER_ADVANCE_SCHEDULE"), jobs.EverySecond),
	}

	var err error
	if raw := getenv("LOG_LEVEL"); raw != "" {
		if e := cfg.LogLevel.UnmarshalText([]byte(raw)); e != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", e))
		}
	}
	if cfg.DBHost == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if cfg.DBName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("DB_NAME"))
	}

	err = errors.Join(err,
		parseDuration(getenv, "ASSEMBLY_TIME_PER_UNIT", &cfg.Timings.AssemblyPerUnit),
		parseDuration(getenv, "DISPATCH_DELAY", &cfg.Timings.DispatchDelay),
		parseDuration(getenv, "DELIVERY_TIME_PER_DISTANCE", &cfg.Timings.DeliveryPerDistance),
		parseDuration(getenv, "HANDOFF_DELAY", &cfg.Timings.HandoffDelay),
	)

	if raw := getenv("PAYOUT_RATE"); raw != "" {
		rate, e := decimal.NewFromString(raw)
		if e != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("PAYOUT_RATE", e))
		} else {
			cfg.Timings.PayoutRate = rate
		}
	}
	if raw := getenv("SEED_DEMO"); raw != "" {
		seed, e := strconv.ParseBool(raw)
		if e != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("SEED_DEMO", e))
		}
		cfg.SeedDemo = seed
	}

	if err != nil {
		return Config{}, err
	}
	if err := cfg.Timings.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func parseDuration(getenv func(string) string, key string, dst *time.Duration) error {
	raw := getenv(key)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	*dst = d
	return nil
}
