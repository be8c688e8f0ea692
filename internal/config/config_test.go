package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

cors:
  allowed_origins:
    - "https://analyzer.example.com"

ingest:
  max_upload_mb: 64
  sample_bytes: 20000

filters:
  min_cpc: 25
  min_cvr: 1.5
  min_clicks: 50
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Test server config
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Test CORS config
	assert.Equal(t, []string{"https://analyzer.example.com"}, cfg.CORS.AllowedOrigins)

	// Test ingest config
	assert.Equal(t, 64, cfg.Ingest.MaxUploadMB)
	assert.Equal(t, 20000, cfg.Ingest.SampleBytes)
	assert.Equal(t, int64(64)<<20, cfg.Ingest.MaxUploadBytes())

	// Test filter defaults from file
	assert.Equal(t, 25.0, cfg.Filters.MinCPC)
	assert.Equal(t, 1.5, cfg.Filters.MinCVR)
	assert.Equal(t, 50.0, cfg.Filters.MinClicks)
}

func TestLoadDefaults(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  host: "localhost"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Verify defaults are applied
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 32, cfg.Ingest.MaxUploadMB)
	assert.Equal(t, 10000, cfg.Ingest.SampleBytes)
	assert.Equal(t, 10.0, cfg.Filters.MinCPC)
	assert.Equal(t, 0.0, cfg.Filters.MinCVR)
	assert.Equal(t, 10.0, cfg.Filters.MinClicks)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 32, cfg.Ingest.MaxUploadMB)
	assert.Equal(t, 10.0, cfg.Filters.MinCPC)
}

func TestLoadFromEnv(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090

ingest:
  max_upload_mb: 16
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	// Set environment variables
	os.Setenv("SERVER_PORT", "7070")
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	os.Setenv("MAX_UPLOAD_MB", "128")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("CORS_ALLOWED_ORIGINS")
		os.Unsetenv("MAX_UPLOAD_MB")
	}()

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	// Environment variables should override file values
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 128, cfg.Ingest.MaxUploadMB)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestGetHost(t *testing.T) {
	cfg := ServerConfig{Host: "localhost"}

	os.Setenv("SERVER_HOST", "10.0.0.5")
	defer os.Unsetenv("SERVER_HOST")
	assert.Equal(t, "10.0.0.5", cfg.GetHost())

	os.Unsetenv("SERVER_HOST")
	assert.Equal(t, "localhost", cfg.GetHost())
}
