package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGO_DB_HOST", "localhost")
	t.Setenv("MONGO_DB_NAME", "portfolio")
}

func TestParse_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, "portfolio-service", cfg.ServiceName)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Token.ExpiresIn)
	assert.Equal(t, "s3cret", cfg.Token.Secret)
	assert.Equal(t, "27017", cfg.Mongo.Port)
	assert.Equal(t, "portfolio", cfg.Mongo.Name)
	assert.Equal(t, "bcrypt", cfg.PasswordHashAlgorithm)
	assert.Equal(t, 0, cfg.GRPCHealthPort)
	assert.False(t, cfg.SMTP.Enabled())
	assert.False(t, cfg.Consul.Enabled())
}

func TestParse_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("MONGO_DB_URI", "mongodb://db:27017")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM", "noreply@example.com")
	t.Setenv("CONSUL_ADDR", "consul:8500")
	t.Setenv("PASSWORD_HASH_ALGORITHM", "argon2id")

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 90*time.Minute, cfg.Token.ExpiresIn)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.ConnectionURI())
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "consul:8500", cfg.Consul.Addr)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		env   map[string]string
	}{
		{name: "missing jwt secret", unset: "JWT_SECRET"},
		{name: "missing database name", unset: "MONGO_DB_NAME"},
		{name: "missing database host", unset: "MONGO_DB_HOST"},
		{name: "bad port", env: map[string]string{"HTTP_PORT": "70000"}},
		{name: "non-positive ttl", env: map[string]string{"JWT_EXPIRES_IN": "0s"}},
		{name: "unknown hash algorithm", env: map[string]string{"PASSWORD_HASH_ALGORITHM": "md5"}},
		{name: "incomplete smtp", env: map[string]string{"SMTP_HOST": "smtp.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			if tt.unset != "" {
				t.Setenv(tt.unset, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := parse()
			assert.Error(t, err)
		})
	}
}
