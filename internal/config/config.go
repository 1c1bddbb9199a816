package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration, loaded from a YAML file with
// environment variable expansion. Missing fields keep their defaults.
type Config struct {
	Name string `yaml:"name"`
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Auth struct {
		AccessSecret string `yaml:"access_secret"`
		AccessExpire int64  `yaml:"access_expire"` // seconds
	} `yaml:"auth"`

	Oracle struct {
		Provider       string `yaml:"provider"` // "anthropic" or "openai"
		APIKey         string `yaml:"api_key"`
		Model          string `yaml:"model"`
		MaxTokens      int    `yaml:"max_tokens"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"oracle"`

	Chat struct {
		HistoryLimit int `yaml:"history_limit"`
	} `yaml:"chat"`
}

// DefaultConfig returns a config that runs out of the box against a local
// SQLite file, with no model provider wired.
func DefaultConfig() *Config {
	cfg := &Config{
		Name: "todochat",
		Host: "127.0.0.1",
		Port: 8977,
	}
	cfg.Database.Path = "./data/todochat.db"
	cfg.Auth.AccessExpire = 86400
	cfg.Oracle.Provider = "anthropic"
	cfg.Oracle.Model = ""
	cfg.Oracle.MaxTokens = 1024
	cfg.Oracle.TimeoutSeconds = 60
	cfg.Chat.HistoryLimit = 50
	return cfg
}

// Load reads the YAML file at path over the defaults. ${VAR} references in
// the file are expanded from the environment before parsing. A missing file
// is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv fills secrets from the environment when the file left them empty.
func (c *Config) applyEnv() {
	if c.Oracle.APIKey == "" {
		switch c.Oracle.Provider {
		case "openai":
			c.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
		default:
			c.Oracle.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if c.Auth.AccessSecret == "" {
		c.Auth.AccessSecret = os.Getenv("ACCESS_SECRET")
	}
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
