package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "galeria.db", cfg.DatabasePath)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 72*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, bcrypt.DefaultCost, cfg.PasswordHashCost)
	require.Equal(t, 21, cfg.ShareLinkSlugLength)
	require.Equal(t, 5, cfg.MaxSlugRetries)
	require.Equal(t, 64, cfg.MaxFolderDepth)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REFRESH_TOKEN_TTL", "24h")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("SHARE_LINK_SLUG_LENGTH", "32")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	require.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 32, cfg.ShareLinkSlugLength)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("REFRESH_TOKEN_TTL", "not-a-duration")
	t.Setenv("PASSWORD_HASH_COST", "99")
	t.Setenv("MAX_SLUG_RETRIES", "-3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 72*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, bcrypt.DefaultCost, cfg.PasswordHashCost)
	require.Equal(t, 5, cfg.MaxSlugRetries)
}
