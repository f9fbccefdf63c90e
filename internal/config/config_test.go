package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, "data/knoxtech.db", cfg.Database.Path)
	require.Equal(t, 720, cfg.Auth.TokenTTLMinutes)
	require.Empty(t, cfg.Auth.JWTSecret)
	require.Equal(t, "us-east-1", cfg.Storage.Region)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KNOXTECH_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("KNOXTECH_AUTH_JWTSECRET", "env-secret")
	t.Setenv("KNOXTECH_AUTH_TOKENTTLMINUTES", "60")
	t.Setenv("KNOXTECH_AUTH_ADMINEMAIL", "Ops@KnoxTech.net")
	t.Setenv("KNOXTECH_STORAGE_BUCKET", "knoxtech-docs")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	require.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	require.Equal(t, "Ops@KnoxTech.net", cfg.Auth.AdminEmail)
	require.Equal(t, "knoxtech-docs", cfg.Storage.Bucket)
}
