package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	AssetBaseURL string        `yaml:"assetBaseUrl"`
	APIBaseURL   string        `yaml:"apiBaseUrl"`
	ImageDir     string        `yaml:"imageDir"`
	HTTPTimeout  time.Duration `yaml:"httpTimeout"`
	MaxDimension int           `yaml:"maxDimension"`
	JPEGQuality  int           `yaml:"jpegQuality"`
	AgentAddr    string        `yaml:"agentAddr"`
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		ImageDir:     "./captures",
		HTTPTimeout:  30 * time.Second,
		MaxDimension: 1600,
		JPEGQuality:  85,
		AgentAddr:    ":8080",
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// path is empty or the file does not exist, then applies environment
// variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values from the environment. Environment wins so
// deployments can keep one config file and vary endpoints per site.
func (c *Config) applyEnv() {
	if v := os.Getenv("WORKUPDATE_ASSET_URL"); v != "" {
		c.AssetBaseURL = v
	}
	if v := os.Getenv("WORKUPDATE_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("WORKUPDATE_IMAGE_DIR"); v != "" {
		c.ImageDir = v
	}
	if v := os.Getenv("WORKUPDATE_AGENT_ADDR"); v != "" {
		c.AgentAddr = v
	}
	if v := os.Getenv("WORKUPDATE_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTPTimeout = d
		}
	}
	if v := os.Getenv("WORKUPDATE_MAX_DIMENSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxDimension = n
		}
	}
	if v := os.Getenv("WORKUPDATE_JPEG_QUALITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.JPEGQuality = n
		}
	}
}

// Validate checks that required endpoints are present
func (c *Config) Validate() error {
	if c.AssetBaseURL == "" {
		return fmt.Errorf("assetBaseUrl is required (or WORKUPDATE_ASSET_URL)")
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("apiBaseUrl is required (or WORKUPDATE_API_URL)")
	}
	return nil
}
