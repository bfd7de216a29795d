package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// DefaultModelURL is the public location of the trained model bundle.
const DefaultModelURL = "https://dataverse.harvard.edu/api/access/datafile/6286241"

// ModelURLEnv overrides the model URL when set.
const ModelURLEnv = "PRANAAM_MODEL_URL"

type Config struct {
	ModelURL               string         `yaml:"model_url"`
	CacheDir               string         `yaml:"cache_dir"`
	DownloadTimeoutSeconds int            `yaml:"download_timeout_seconds"`
	Log                    LogConfig      `yaml:"log"`
	Database               DatabaseConfig `yaml:"database"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		ModelURL:               DefaultModelURL,
		DownloadTimeoutSeconds: 120,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
	}
	cfg.applyEnv()
	return cfg
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	if cfg.ModelURL == "" {
		cfg.ModelURL = DefaultModelURL
	}
	if cfg.DownloadTimeoutSeconds <= 0 {
		cfg.DownloadTimeoutSeconds = 120
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment win over both file and defaults.
func (c *Config) applyEnv() {
	if url := os.Getenv(ModelURLEnv); url != "" {
		c.ModelURL = url
	}
}

// ResolveCacheDir returns the configured cache dir, falling back to the
// platform user cache directory.
func (c *Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "pranaam"), nil
}
