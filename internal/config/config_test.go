package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("plain values", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("SESSION_TTL", "2h")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "forever")

		cfg := Default()
		assert.Error(t, cfg.applyEnvOverrides())
	})

	t.Run("embedding key follows provider", func(t *testing.T) {
		t.Setenv("EMBEDDING_PROVIDER", "gemini")
		t.Setenv("OPENAI_API_KEY", "oa-key")
		t.Setenv("GEMINI_API_KEY", "gm-key")

		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "gemini", cfg.Embedding.Provider)
		assert.Equal(t, "gm-key", cfg.Embedding.APIKey)
	})
}

func TestLoad(t *testing.T) {
	t.Run("file then env", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "foodbridge.yaml")
		content := []byte("port: \"7000\"\njwt_secret: from-file\nsmtp:\n  host: smtp.example.com\n  from: noreply@example.com\n")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		t.Setenv("FOODBRIDGE_CONFIG", path)
		t.Setenv("JWT_SECRET", "from-env")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "7000", cfg.Port)
		assert.Equal(t, "from-env", cfg.JWTSecret)
		assert.True(t, cfg.SMTP.Enabled())
		assert.Equal(t, 587, cfg.SMTP.Port)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("FOODBRIDGE_CONFIG", "")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})
}
