package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the environment-driven configuration of the gateway process.
type Config struct {
	Port           int    `validate:"gt=0,lte=65535"`
	DatabaseDriver string `validate:"oneof=sqlite postgres"`
	DatabaseDSN    string `validate:"required"`
	// ChainID identifies the hosting ledger when no RPC endpoint is
	// configured.
	ChainID int64 `validate:"gt=0"`
	// RPCURL is optional; when set, chain identity and height are read from
	// the endpoint instead of the static context.
	RPCURL         string
	OwnerAddress   string `validate:"required,eth_addr"`
	GatewayAddress string `validate:"required,eth_addr"`
	JWTSecret      string `validate:"required,min=16"`
}

// Load reads configuration from the environment, with .env support.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvInt("PORT", 8080),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "data/bridgegate.db"),
		ChainID:        int64(getEnvInt("CHAIN_ID", 31337)),
		RPCURL:         os.Getenv("RPC_URL"),
		OwnerAddress:   os.Getenv("OWNER_ADDRESS"),
		GatewayAddress: os.Getenv("GATEWAY_ADDRESS"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
