package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/user/qrisk-adk/pkg/engine"
	"gopkg.in/yaml.v3"
)

type ProviderConfig struct {
	APIKey string `yaml:"api_key"`
}

type Config struct {
	Profile          engine.Profile            `yaml:"profile"`
	SelectedProvider string                    `yaml:"selected_provider"`
	SelectedModel    string                    `yaml:"selected_model"`
	Providers        map[string]ProviderConfig `yaml:"providers"`
}

// providerEnv maps provider names onto the env vars that may hold their key
var providerEnv = map[string]string{
	"gemini": "GOOGLE_API_KEY",
	"openai": "OPENAI_API_KEY",
}

// Default is used when no config file exists yet
func Default() *Config {
	return &Config{
		Profile:          engine.DefaultProfile(),
		SelectedProvider: "gemini",
		SelectedModel:    "gemini-1.5-flash",
		Providers:        make(map[string]ProviderConfig),
	}
}

// GetConfigPath returns ~/.qrisk-adk/config.yaml unless QRISK_CONFIG points elsewhere
func GetConfigPath() (string, error) {
	if p := os.Getenv("QRISK_CONFIG"); p != "" {
		if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
			return "", err
		}
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".qrisk-adk")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// LoadConfig reads the config file, loads .env and applies environment overrides
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	// a missing .env is fine
	_ = godotenv.Load()

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a config file without touching the environment
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	cfg.Profile = cfg.Profile.WithDefaults()
	return cfg, nil
}

// ApplyEnv overrides profile fields and API keys from the environment
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("QRISK_BANK_NAME"); v != "" {
		c.Profile.BankName = v
	}
	if v := getenv("QRISK_BANK_SIZE"); v != "" {
		c.Profile.BankSize = engine.BankSize(v)
	}
	if v := getenv("QRISK_READINESS"); v != "" {
		c.Profile.Readiness = engine.ReadinessLevel(v)
	}
	if v := getenv("QRISK_RISK_TOLERANCE"); v != "" {
		c.Profile.RiskTolerance = engine.RiskTolerance(v)
	}
	if v := getenv("QRISK_NUM_SYSTEMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("QRISK_NUM_SYSTEMS: %w", err)
		}
		c.Profile.NumSystems = n
	}
	if v := getenv("QRISK_ADVANCEMENT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("QRISK_ADVANCEMENT: %w", err)
		}
		if err := engine.ValidateAdvancementFactor(f); err != nil {
			return fmt.Errorf("QRISK_ADVANCEMENT: %w", err)
		}
		c.Profile.AdvancementFactor = f
	}
	for provider, env := range providerEnv {
		if v := getenv(env); v != "" && c.GetAPIKey(provider) == "" {
			c.SetAPIKey(provider, v)
		}
	}
	return nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600 permissions for security (api keys)
	return os.WriteFile(path, data, 0600)
}

func (c *Config) SetAPIKey(provider, key string) {
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}
	p := c.Providers[strings.ToLower(provider)]
	p.APIKey = key
	c.Providers[strings.ToLower(provider)] = p
}

func (c *Config) GetAPIKey(provider string) string {
	return c.Providers[strings.ToLower(provider)].APIKey
}
