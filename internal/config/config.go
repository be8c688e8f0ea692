package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig `yaml:"server"`
	CORS    CORSConfig   `yaml:"cors"`
	Ingest  IngestConfig `yaml:"ingest"`
	Filters FilterConfig `yaml:"filters"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	// Allow override via environment
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// IngestConfig tunes report upload handling
type IngestConfig struct {
	MaxUploadMB int `yaml:"max_upload_mb"`
	SampleBytes int `yaml:"sample_bytes"`
}

// MaxUploadBytes returns the request body cap for uploads
func (c IngestConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// FilterConfig holds the default keyword-discovery thresholds. Requests may
// override them per query, within the Max bounds below.
type FilterConfig struct {
	MinCPC    float64 `yaml:"min_cpc"`
	MinCVR    float64 `yaml:"min_cvr"`
	MinClicks float64 `yaml:"min_clicks"`
}

// Upper bounds accepted for threshold query parameters
const (
	MaxCPCThreshold    = 500.0
	MaxCVRThreshold    = 20.0
	MaxClicksThreshold = 1000.0
)

// Default returns the configuration used when no config file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so local tweaks can live in .env and real env vars on the container.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, perr := strconv.Atoi(v); perr == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitOrigins(v)
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if mb, perr := strconv.Atoi(v); perr == nil && mb > 0 {
			cfg.Ingest.MaxUploadMB = mb
		}
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if c.Ingest.MaxUploadMB == 0 {
		c.Ingest.MaxUploadMB = 32
	}
	if c.Ingest.SampleBytes == 0 {
		c.Ingest.SampleBytes = 10000
	}
	if c.Filters.MinCPC == 0 {
		c.Filters.MinCPC = 10
	}
	if c.Filters.MinClicks == 0 {
		c.Filters.MinClicks = 10
	}
	// MinCVR stays 0: every conversion rate passes until the client raises it
}

func splitOrigins(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
