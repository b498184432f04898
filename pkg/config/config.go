package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

type Config struct {
	StorageDir      string                  `toml:"storage_dir"`
	RefreshInterval Duration                `toml:"refresh_interval"`
	Providers       map[string]ProviderInfo `toml:"providers"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type ProviderInfo struct {
	Type string `toml:"type"`
	// Interval specifies how often this provider's catalog should be
	// refreshed. If not specified, defaults to the global refresh interval.
	Interval *Duration   `toml:"interval,omitempty"`
	Config   interface{} `toml:"config"`
}

func GetDefaultConfig() (*Config, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return nil, fmt.Errorf("getting default storage directory: %w", err)
	}
	return &Config{
		StorageDir:      storageDir,
		RefreshInterval: Duration{6 * time.Hour},
		Providers:       make(map[string]ProviderInfo),
	}, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.StorageDir == "" {
		storageDir, err := GetDefaultStorageDir()
		if err != nil {
			return nil, fmt.Errorf("getting default storage directory: %w", err)
		}
		config.StorageDir = storageDir
	}

	if config.RefreshInterval.Duration == 0 {
		config.RefreshInterval = Duration{6 * time.Hour}
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderInfo)
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	storageDir := c.StorageDir
	if storageDir == "" {
		var err error
		storageDir, err = GetDefaultStorageDir()
		if err != nil {
			return fmt.Errorf("getting default storage directory: %w", err)
		}
	}

	// Replace the placeholder storage_dir with the actual path
	template := strings.Replace(configTemplate, "/home/user/.local/share/coursexpert", storageDir, 1)
	return os.WriteFile(configPath, []byte(template), 0644)
}

func (c *Config) AddProvider(name, providerType string, providerConfig interface{}) {
	c.Providers[name] = ProviderInfo{
		Type:   providerType,
		Config: providerConfig,
	}
}

func (c *Config) GetProviderConfig(name string) (string, interface{}, error) {
	info, exists := c.Providers[name]
	if !exists {
		return "", nil, fmt.Errorf("provider %s not found", name)
	}

	return info.Type, info.Config, nil
}

func (c *Config) GetProviderInterval(name string) time.Duration {
	info, exists := c.Providers[name]
	if !exists || info.Interval == nil {
		return c.RefreshInterval.Duration
	}
	return info.Interval.Duration
}

func (c *Config) ListProviders() []string {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	return names
}

func (c *Config) RemoveProvider(name string) {
	delete(c.Providers, name)
}

// GetDefaultStorageDir returns the default storage directory for the profile
// database
func GetDefaultStorageDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "coursexpert")

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory %s: %w", appDir, err)
	}

	return appDir, nil
}

// GetDefaultProfileDBPath returns the default profile database path in the
// user's data directory
func GetDefaultProfileDBPath() (string, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(storageDir, "profiles.db"), nil
}

// GetConfigDir returns the configuration directory for coursexpert
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	appConfigDir := filepath.Join(configDir, "coursexpert")

	if err := os.MkdirAll(appConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", appConfigDir, err)
	}

	return appConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
