package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultTemperature is the sampling temperature used when the config does not set one.
const DefaultTemperature = 0.6

type Config struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"api_key,omitempty"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`

	// Persona is the persona preselected in the UI.
	Persona string `yaml:"persona,omitempty"`

	// SecretsURL points at a scy secret resource holding the API key.
	SecretsURL string `yaml:"secrets_url,omitempty"`

	path string
}

func DefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		Temperature: DefaultTemperature,
		Persona:     "health-advisor",
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "advisor"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// SecretsPath is the YAML secrets file consulted when the key is not in the environment.
func SecretsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "secrets.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from the default location.
// A missing file is not an error: it returns nil, nil.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.path = path

	return cfg, nil
}

// LoadOrDefault returns the config at path (or the default location when path
// is empty), falling back to DefaultConfig when no file exists yet.
func LoadOrDefault(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path == "" {
		cfg, err = Load()
	} else {
		cfg, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
		cfg.path = path
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// EffectiveTemperature returns the configured temperature or the default.
func (c *Config) EffectiveTemperature() float64 {
	if c.Temperature <= 0 {
		return DefaultTemperature
	}
	return c.Temperature
}

// EffectiveModel returns the configured model or the provider's default one.
func (c *Config) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	if p := GetProvider(c.Provider); p != nil && p.DefaultModel != "" {
		return p.DefaultModel
	}
	return "gpt-4o-mini"
}

// EffectiveBaseURL returns the configured base URL or the provider's one.
func (c *Config) EffectiveBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if p := GetProvider(c.Provider); p != nil {
		return p.BaseURL
	}
	return ""
}

// APIKeyEnv is the environment variable holding the key for the configured provider.
func (c *Config) APIKeyEnv() string {
	if p := GetProvider(c.Provider); p != nil && p.EnvKey != "" {
		return p.EnvKey
	}
	return "OPENAI_API_KEY"
}
