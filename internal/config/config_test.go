package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not error: %v", err)
	}
	if cfg.Port != 8977 {
		t.Errorf("unexpected default port: %d", cfg.Port)
	}
	if cfg.Database.Path == "" {
		t.Error("expected a default database path")
	}
	if cfg.Chat.HistoryLimit != 50 {
		t.Errorf("unexpected default history limit: %d", cfg.Chat.HistoryLimit)
	}
}

func TestLoadOverridesAndEnvExpansion(t *testing.T) {
	t.Setenv("TEST_ORACLE_KEY", "sk-from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 9000
database:
  path: /tmp/other.db
oracle:
  provider: openai
  api_key: ${TEST_ORACLE_KEY}
  model: gpt-4o-mini
chat:
  history_limit: 8
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("port override lost: %d", cfg.Port)
	}
	if cfg.Oracle.APIKey != "sk-from-env" {
		t.Errorf("env expansion failed: %q", cfg.Oracle.APIKey)
	}
	if cfg.Oracle.Model != "gpt-4o-mini" {
		t.Errorf("model override lost: %q", cfg.Oracle.Model)
	}
	if cfg.Chat.HistoryLimit != 8 {
		t.Errorf("history limit override lost: %d", cfg.Chat.HistoryLimit)
	}
	// Defaults survive for fields the file leaves out.
	if cfg.Host != "127.0.0.1" {
		t.Errorf("unexpected host: %q", cfg.Host)
	}
	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("unexpected addr: %q", cfg.Addr())
	}
}

func TestAPIKeyFallsBackToEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("oracle:\n  provider: openai\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Oracle.APIKey != "sk-openai" {
		t.Errorf("expected api key from environment, got %q", cfg.Oracle.APIKey)
	}
}
