package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/console", cfg.ConsolePrefix)
	assert.Equal(t, "http://localhost:5000", cfg.Upstream.BaseURL)
	assert.Zero(t, cfg.Upstream.Timeout)
	assert.Equal(t, SessionStoreFile, cfg.Session.Store)
	assert.Equal(t, 5*time.Minute, cfg.Spool.ObjectTTL)
	assert.False(t, cfg.Audit.Enabled)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("UPSTREAM_BASE_URL", "https://api.example.com/")
	v.Set("UPSTREAM_TIMEOUT", "15s")
	v.Set("SESSION_STORE", " Redis ")
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	v.Set("SPOOL_OBJECT_TTL", "not-a-duration")

	cfg := fromViper(v)
	assert.Equal(t, "https://api.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Spool.ObjectTTL)
}
