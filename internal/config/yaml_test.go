package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	content := `
database:
  host: db.internal
  port: 5433
  name: tontine_test
server:
  port: 8080
email:
  otp_expiry_minutes: 10
security:
  bcrypt_cost: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(content), 0o600))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
		AppConfig = nil
	})

	require.NoError(t, LoadConfig())

	cfg := GetConfig()
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "tontine_test", cfg.Database.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Email.OTPExpiryMinutes)
	assert.Equal(t, 4, cfg.Security.BCryptCost)

	// Fields absent from the file fall back to defaults.
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "24h", cfg.JWT.Expiry)
	assert.Equal(t, "Ma Tontine", cfg.Email.FromName)
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	assert.Error(t, LoadConfig())
}

func TestGetConfigDefaults(t *testing.T) {
	AppConfig = nil
	t.Cleanup(func() { AppConfig = nil })

	cfg := GetConfig()
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.NotEmpty(t, cfg.Server.CORSOrigins)
	assert.Equal(t, 5, cfg.Email.OTPExpiryMinutes)
	assert.Equal(t, 12, cfg.Security.BCryptCost)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("MA_TONTINE_TEST_VAR", "set")
	assert.Equal(t, "set", GetEnv("MA_TONTINE_TEST_VAR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("MA_TONTINE_TEST_VAR_UNSET", "fallback"))
}
