package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// StorageSettings configures the remote asset store.
type StorageSettings struct {
	Bucket       string `json:"bucket"`
	Region       string `json:"region"`
	KeyPrefix    string `json:"key_prefix"`
	UsePathStyle bool   `json:"use_path_style"`
}

// Config holds the configuration for the admin dashboard application
type Config struct {
	WebAddr      string           `json:"web_addr"`
	WebPort      int              `json:"web_port"`
	DatabasePath string           `json:"database_path"`
	PreviewDir   string           `json:"preview_dir"`
	LogPath      string           `json:"log_path"`
	LogLevel     string           `json:"log_level"`
	Storage      *StorageSettings `json:"storage"`
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	dataDir := "."

	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		dataDir = filepath.Join(homeDir, "myaisells-admin")

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			dataDir = "."
		}
	}

	return &Config{
		WebAddr:      "127.0.0.1",
		WebPort:      8080,
		DatabasePath: filepath.Join(dataDir, "admin.db"),
		PreviewDir:   filepath.Join(dataDir, "previews"),
		LogPath:      "logs",
		LogLevel:     "info",
		Storage: &StorageSettings{
			Bucket:    "myaisells-assets",
			KeyPrefix: "help-center",
		},
	}
}

// defaultConfigPath returns the config file location used when no explicit
// path is given
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "config.json"
	}
	return filepath.Join(homeDir, "myaisells-admin", "config.json")
}

// LoadConfig loads the configuration from a JSON file and applies environment
// overrides. A .env file next to the working directory is honored if present.
// An empty path uses the default location in the user's home directory.
func LoadConfig(path string) (*Config, error) {
	// Missing .env is fine, the process environment still applies.
	_ = godotenv.Load()

	if path == "" {
		path = defaultConfigPath()
	}

	config := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.applyEnv()
			return config, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyEnv()
	return config, nil
}

// applyEnv overrides file-based settings with environment variables. AWS
// credentials themselves are resolved by the SDK's default chain and are not
// part of this config.
func (c *Config) applyEnv() {
	if v := os.Getenv("ADMIN_WEB_ADDR"); v != "" {
		c.WebAddr = v
	}
	if v := os.Getenv("ADMIN_WEB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.WebPort = port
		}
	}
	if v := os.Getenv("ADMIN_DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("ADMIN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if c.Storage == nil {
		c.Storage = &StorageSettings{}
	}
	if v := os.Getenv("ADMIN_ASSET_BUCKET"); v != "" {
		c.Storage.Bucket = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" && c.Storage.Region == "" {
		c.Storage.Region = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.WebPort <= 0 || c.WebPort > 65535 {
		return fmt.Errorf("invalid web port: %d", c.WebPort)
	}
	if c.Storage == nil || c.Storage.Bucket == "" {
		return fmt.Errorf("asset bucket must be configured")
	}
	return nil
}

// SaveConfig saves the configuration to a JSON file. An empty path uses the
// default location in the user's home directory.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		path = defaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config file: %w", err)
	}

	return nil
}
