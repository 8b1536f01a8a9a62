package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Booking.MaxAttempts)
	assert.Equal(t, 5*time.Millisecond, cfg.Booking.InitialBackoff)
	assert.Equal(t, "auth", cfg.Session.CookieName)
	assert.Same(t, AppConfig, cfg)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("BOOKING_MAX_ATTEMPTS", "8")
	t.Setenv("BOOKING_MAX_BACKOFF", "250ms")

	cfg := LoadConfig()

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 8, cfg.Booking.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Booking.MaxBackoff)
}
