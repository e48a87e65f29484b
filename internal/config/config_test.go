package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "rail")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "railway")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL_HOURS", "24")
	t.Setenv("BCRYPT_COST", "10")
}

func TestLoadReadsEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_AUTO_INIT", "")

	cfg := Load()
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "railway", cfg.DBName)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 24, cfg.TokenTTLHrs)
	assert.Equal(t, 10, cfg.BcryptCost)
	// A fresh deployment must be able to bootstrap itself without an
	// existing admin, so auto-init defaults on.
	assert.True(t, cfg.DBAutoInit)
}

func TestLoadAutoInitDisabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_AUTO_INIT", "false")
	assert.False(t, Load().DBAutoInit)
}
