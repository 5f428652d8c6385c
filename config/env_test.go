package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFiles_Layering(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"app_port": 9000, "jwt_ttl": 60, "db_driver": "postgres"}`), 0o600))
	require.NoError(t, os.WriteFile(envPath, []byte("# comment\nAPP_PORT=9100\nJWT_SECRET=\"from-dotenv\"\n"), 0o600))
	t.Setenv("APP_PORT", "9200")
	t.Setenv("RATE_LIMIT", "5")

	saved := snapshot()
	t.Cleanup(func() { restore(saved) })
	require.NoError(t, loadFromFiles(jsonPath, envPath))

	assert.Equal(t, "9200", get("APP_PORT", ""))
	assert.Equal(t, "from-dotenv", get("JWT_SECRET", ""))
	assert.Equal(t, "postgres", get("DB_DRIVER", ""))
	assert.Equal(t, "60", get("JWT_TTL", ""))
	assert.Equal(t, 5, getInt("RATE_LIMIT", 0))
}

func TestLoadFromFiles_MissingFilesKeepDefaults(t *testing.T) {
	saved := snapshot()
	t.Cleanup(func() { restore(saved) })

	dir := t.TempDir()
	require.NoError(t, loadFromFiles(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env")))
	assert.Equal(t, defaultJWTSecret, get("JWT_SECRET", ""))
}

func TestAccessors(t *testing.T) {
	saved := snapshot()
	t.Cleanup(func() { restore(saved) })

	Set("JWT_TTL", "120")
	Set("DB_DRIVER", "oracle")
	Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	Set("RATE_LIMIT", "not-a-number")

	assert.Equal(t, 2*time.Minute, JWTTTL())
	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, defaultSQLiteDSN, DatabaseDSN())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSAllowedOrigins())
	assert.Equal(t, defaultRateLimit, RateLimit())
}

func snapshot() map[string]string {
	_ = Load()
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func restore(v map[string]string) {
	mu.Lock()
	values = v
	mu.Unlock()
}
