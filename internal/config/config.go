// Package config loads and saves the Pomelo YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/pomelo-edu/pomelo/internal/feedback"
	"github.com/pomelo-edu/pomelo/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
	Export ExportConfig `yaml:"export"`
}

// LLMConfig selects the provider and tunes generation.
type LLMConfig struct {
	llm.Config  `yaml:",inline"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// ServerConfig configures `pomelo serve`.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// StoreConfig locates the usage database.
type StoreConfig struct {
	Path     string `yaml:"path,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// ExportConfig configures PDF export.
type ExportConfig struct {
	// BrowserBin points at a Chromium binary. Empty lets rod find or
	// download one.
	BrowserBin string `yaml:"browser_bin,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	fb := feedback.DefaultConfig()
	return Config{
		LLM: LLMConfig{
			Config:      llm.DefaultConfig(),
			MaxTokens:   fb.MaxTokens,
			Temperature: fb.Temperature,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Path resolves the config file location in priority order:
// 1. the explicit path (--config flag)
// 2. POMELO_CONFIG environment variable
// 3. $XDG_CONFIG_HOME/pomelo/config.yaml
// 4. ~/.config/pomelo/config.yaml
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv("POMELO_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pomelo", "config.yaml"), nil
}

// Load reads the file at path over the defaults, then applies POMELO_*
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	cfg.LLM.Config = llm.ApplyEnv(cfg.LLM.Config)

	if v := os.Getenv("POMELO_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LLM.MaxTokens = n
		}
	}
	if v := os.Getenv("POMELO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("POMELO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("POMELO_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("POMELO_BROWSER_BIN"); v != "" {
		cfg.Export.BrowserBin = v
	}
	return cfg
}

// Save writes the configuration to path, readable by the owner only since
// it may hold API keys.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Feedback returns the generation settings for feedback.Service.
func (c Config) Feedback() feedback.Config {
	cfg := feedback.DefaultConfig()
	if c.LLM.MaxTokens > 0 {
		cfg.MaxTokens = c.LLM.MaxTokens
	}
	if c.LLM.Temperature > 0 {
		cfg.Temperature = c.LLM.Temperature
	}
	return cfg
}

// Masked returns a copy with API keys shortened for display.
func (c Config) Masked() Config {
	c.LLM.Gemini.APIKey = mask(c.LLM.Gemini.APIKey)
	c.LLM.Anthropic.APIKey = mask(c.LLM.Anthropic.APIKey)
	c.LLM.OpenAI.APIKey = mask(c.LLM.OpenAI.APIKey)
	c.LLM.OpenRouter.APIKey = mask(c.LLM.OpenRouter.APIKey)
	return c
}

func mask(key string) string {
	switch {
	case key == "":
		return ""
	case len(key) <= 8:
		return "****"
	default:
		return key[:4] + "****" + key[len(key)-2:]
	}
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
