package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Setenv("OWNER_ADDRESS", "0x1000000000000000000000000000000000000001")
	t.Setenv("GATEWAY_ADDRESS", "0x2000000000000000000000000000000000000002")
	t.Setenv("JWT_SECRET", "a-long-enough-secret-value")
}

func TestLoadDefaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, int64(31337), cfg.ChainID)
}

func TestLoadOverrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=localhost user=gw dbname=gw")
	t.Setenv("CHAIN_ID", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, int64(1), cfg.ChainID)
}

func TestLoadRejectsMissingOwner(t *testing.T) {
	setValidEnv(t)
	t.Setenv("OWNER_ADDRESS", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadAddress(t *testing.T) {
	setValidEnv(t)
	t.Setenv("OWNER_ADDRESS", "not-an-address")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	setValidEnv(t)
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}
