package cmd

import (
	"fmt"
	"os"
	"time"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/domain/model/kernel"

	faster "github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	JWTTTL          time.Duration
	IdempotencyTTL  time.Duration
	TaxRate         decimal.Decimal
	DeliveryFee     kernel.Money
	RefreshSchedule string
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, faster.Wrap(err, "load .env")
	}

	cfg := Config{
		HTTPPort:        env("HTTP_PORT", "8080"),
		DBHost:          env("DB_HOST", "localhost"),
		DBPort:          env("DB_PORT", "5432"),
		DBUser:          env("DB_USER", "postgres"),
		DBPassword:      env("DB_PASSWORD", ""),
		DBName:          env("DB_NAME", "discount"),
		DBSslMode:       env("DB_SSLMODE", "disable"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   env("REDIS_PASSWORD", ""),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RefreshSchedule: env("REFRESH_SCHEDULE", "@every 60s"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, faster.New("JWT_SECRET is required")
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(env("JWT_TTL", "24h")); err != nil {
		return Config{}, faster.Wrap(err, "JWT_TTL")
	}
	if cfg.IdempotencyTTL, err = time.ParseDuration(env("IDEMPOTENCY_TTL", "24h")); err != nil {
		return Config{}, faster.Wrap(err, "IDEMPOTENCY_TTL")
	}
	if cfg.TaxRate, err = decimal.NewFromString(env("TAX_RATE", "0.10")); err != nil {
		return Config{}, faster.Wrap(err, "TAX_RATE")
	}
	if cfg.DeliveryFee, err = kernel.MoneyFromString(env("DELIVERY_FEE", "10.00")); err != nil {
		return Config{}, faster.Wrap(err, "DELIVERY_FEE")
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Pricing() commands.PricingConfig {
	return commands.PricingConfig{DeliveryFee: c.DeliveryFee, TaxRate: c.TaxRate}
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
