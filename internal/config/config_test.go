package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const validKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PASETO_KEY", validKey)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.True(t, cfg.Server.IsDevelopment())
	require.Equal(t, 15*time.Minute, cfg.Auth.TokenDuration)
	require.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoad_RejectsBadPasetoKey(t *testing.T) {
	t.Setenv("PASETO_KEY", "too-short")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "PASETO_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PASETO_KEY", validKey)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("TOKEN_DURATION", "600")
	t.Setenv("TRUSTED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Server.Port)
	require.False(t, cfg.Server.IsDevelopment())
	require.Equal(t, 10*time.Minute, cfg.Auth.TokenDuration)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.TrustedOrigins)
}

func TestConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "svc",
		Password: "secret",
		DBName:   "accounts",
		SSLMode:  "require",
	}

	require.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=accounts sslmode=require",
		cfg.ConnectionString(),
	)
}
