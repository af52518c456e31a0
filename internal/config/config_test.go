package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultCatalogBaseURL, cfg.Catalog.BaseURL)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionLifetime)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Auth.SecureCookies)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_SECRET", "env-secret")
	t.Setenv("SESSION_LIFETIME", "24h")
	t.Setenv("SECURE_COOKIES", "false")
	t.Setenv("GOOGLE_BOOKS_API_KEY", "env-key")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "env-secret", cfg.Auth.SessionSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionLifetime)
	assert.False(t, cfg.Auth.SecureCookies)
	assert.Equal(t, "env-key", cfg.Catalog.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(), ErrSessionSecretRequired)

	cfg.Auth.SessionSecret = "secret"
	assert.ErrorIs(t, cfg.Validate(), ErrCatalogKeyRequired)

	cfg.Catalog.APIKey = "key"
	assert.NoError(t, cfg.Validate())
}
