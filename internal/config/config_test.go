package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != defaultDBPath {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.Provider.Active != ProviderOllama {
		t.Errorf("Active = %q, want %q", cfg.Provider.Active, ProviderOllama)
	}
	if cfg.Provider.Models[ProviderOllama] != "qwen2.5:14b" {
		t.Errorf("ollama model = %q", cfg.Provider.Models[ProviderOllama])
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
database: apps.db
resume_dir: out/resumes
http_timeout: 45s
provider:
  active: openai
  models:
    openai: gpt-4.1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "apps.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ResumeDir != "out/resumes" {
		t.Errorf("ResumeDir = %q", cfg.ResumeDir)
	}
	if cfg.CoverLetterDir != defaultCoverLetterDir {
		t.Errorf("CoverLetterDir = %q, want default", cfg.CoverLetterDir)
	}
	if cfg.HTTPTimeout != 45*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.Provider.Active != ProviderOpenAI {
		t.Errorf("Active = %q", cfg.Provider.Active)
	}
	if cfg.Provider.Models[ProviderOpenAI] != "gpt-4.1" {
		t.Errorf("openai model = %q", cfg.Provider.Models[ProviderOpenAI])
	}
	// Unspecified providers keep their default models.
	if cfg.Provider.Models[ProviderAnthropic] != defaultModels[ProviderAnthropic] {
		t.Errorf("anthropic model = %q, want default", cfg.Provider.Models[ProviderAnthropic])
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-123")
	path := writeConfig(t, `
provider:
  active: openai
  api_keys:
    openai: ${OPENAI_API_KEY}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.APIKeys[ProviderOpenAI] != "sk-test-123" {
		t.Errorf("openai key = %q, want expanded env value", cfg.Provider.APIKeys[ProviderOpenAI])
	}
}

func TestLoadSecretsFile(t *testing.T) {
	dir := t.TempDir()
	secrets := filepath.Join(dir, ".env")
	if err := os.WriteFile(secrets, []byte("ANTHROPIC_API_KEY=from-secrets\n"), 0o600); err != nil {
		t.Fatalf("write secrets: %v", err)
	}
	t.Setenv("ANTHROPIC_API_KEY", "")
	os.Unsetenv("ANTHROPIC_API_KEY")

	path := writeConfig(t, "secrets_file: "+secrets+"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.APIKeys[ProviderAnthropic] != "from-secrets" {
		t.Errorf("anthropic key = %q, want value from secrets file", cfg.Provider.APIKeys[ProviderAnthropic])
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, "provider:\n  active: bedrock\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown active provider")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "database: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
