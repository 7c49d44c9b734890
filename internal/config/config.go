package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Config represents the schoolctl configuration, including the stored token
// pair from the last login.
type Config struct {
	BaseURL         string `json:"baseUrl"`
	CacheTTLSeconds int    `json:"cacheTtlSeconds"`
	AccessToken     string `json:"accessToken,omitempty"`
	RefreshToken    string `json:"refreshToken,omitempty"`
}

// CacheTTL returns the configured response cache lifetime, falling back to
// the default when the stored value is missing or non-positive.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return time.Duration(Default().CacheTTLSeconds) * time.Second
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		BaseURL:         "http://localhost:8000/api/",
		CacheTTLSeconds: 300,
	}
}

// ConfigDir returns the platform-appropriate config directory for schoolctl.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "schoolctl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "schoolctl"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "schoolctl"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "schoolctl"), nil
	default:
		return filepath.Join(home, ".config", "schoolctl"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns the defaults and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Load returns the effective config: file values overridden by environment
// variables SCHOOLCTL_BASE_URL and SCHOOLCTL_CACHE_TTL_SECONDS.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SCHOOLCTL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SCHOOLCTL_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLSeconds = n
		}
	}
}

// Save writes the config (including tokens) back to the config file,
// creating the directory if needed. Tokens are credentials, so the file is
// written user-only.
func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ClearTokens drops the stored token pair and saves.
func ClearTokens(cfg Config) error {
	cfg.AccessToken = ""
	cfg.RefreshToken = ""
	return Save(cfg)
}
