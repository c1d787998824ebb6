package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// CaptionConfig holds caption-service configuration.
type CaptionConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Timeout  string `mapstructure:"timeout"`
	Fallback string `mapstructure:"fallback"`
}

// TimeoutDuration parses the configured timeout, defaulting to 30s on any
// unparseable value.
func (c CaptionConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Config holds the application configuration.
type Config struct {
	Storage       string        `mapstructure:"storage"`
	DataDir       string        `mapstructure:"data_dir"`
	AtomicLinking bool          `mapstructure:"atomic_linking"`
	Caption       CaptionConfig `mapstructure:"caption"`
}

// DefaultDataDir returns the default data directory (~/.photodiaryctl/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".photodiaryctl")
	}
	return filepath.Join(home, ".photodiaryctl")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "sqlite")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("atomic_linking", false)
	v.SetDefault("caption.base_url", "http://localhost:8000")
	v.SetDefault("caption.timeout", "30s")
	v.SetDefault("caption.fallback", "")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "photodiaryctl"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: PHOTODIARYCTL_STORAGE, PHOTODIARYCTL_DATA_DIR, etc.
	v.SetEnvPrefix("PHOTODIARYCTL")
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
