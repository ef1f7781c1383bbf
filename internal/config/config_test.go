package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout())
	assert.Equal(t, 10*time.Second, cfg.E2E.AssertTimeout())
	assert.True(t, cfg.E2E.Headless)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pawshop.yaml")
	content := `
api:
  base_url: https://shop.example.com/api
  timeout: 5s
e2e:
  app_url: https://shop.example.com
  headless: false
  assert_timeout_ms: 2000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.RequestTimeout())
	assert.Equal(t, "https://shop.example.com", cfg.E2E.AppURL)
	assert.False(t, cfg.E2E.Headless)
	assert.Equal(t, 2*time.Second, cfg.E2E.AssertTimeout())
	// Untouched sections keep defaults.
	assert.Equal(t, "user@example.com", cfg.E2E.UserEmail)
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	t.Setenv("PAWSHOP_API_URL", "http://env-api:9999/api")
	t.Setenv("PAWSHOP_HEADLESS", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://env-api:9999/api", cfg.API.BaseURL)
	assert.False(t, cfg.E2E.Headless)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "pawshop.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://saved:8080/api"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://saved:8080/api", loaded.API.BaseURL)
}

func TestTimeouts_FallBackOnGarbage(t *testing.T) {
	api := APIConfig{Timeout: "not-a-duration"}
	assert.Equal(t, 30*time.Second, api.RequestTimeout())

	e2e := E2EConfig{NavigationTimeoutMs: 0, AssertTimeoutMs: -5}
	assert.Equal(t, 30*time.Second, e2e.NavigationTimeout())
	assert.Equal(t, 10*time.Second, e2e.AssertTimeout())
}
