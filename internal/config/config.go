package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Known provider names. The registry builds its lookup table from these.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Providers lists the known provider names.
var Providers = []string{ProviderOllama, ProviderOpenAI, ProviderAnthropic}

// Config is the root configuration for the tracker.
type Config struct {
	DBPath         string
	ResumeDir      string
	CoverLetterDir string
	SecretsPath    string // .env file holding API keys, written back on change
	HTTPTimeout    time.Duration
	Provider       ProviderConfig
}

// ProviderConfig holds generation-provider settings.
type ProviderConfig struct {
	Active    string            // one of Providers
	OllamaURL string            // base URL of the local Ollama server
	Models    map[string]string // default model per provider
	APIKeys   map[string]string // credential per provider; ollama needs none
}

const (
	defaultDBPath         = "job_applications.db"
	defaultResumeDir      = "resumes"
	defaultCoverLetterDir = "cover_letters"
	defaultSecretsPath    = ".env"
	defaultOllamaURL      = "http://localhost:11434"
	defaultHTTPTimeout    = 120 * time.Second
)

var defaultModels = map[string]string{
	ProviderOllama:    "qwen2.5:14b",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-sonnet-20241022",
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration
// as string).
type rawConfig struct {
	Database       string            `yaml:"database"`
	ResumeDir      string            `yaml:"resume_dir"`
	CoverLetterDir string            `yaml:"cover_letter_dir"`
	SecretsFile    string            `yaml:"secrets_file"`
	HTTPTimeout    string            `yaml:"http_timeout"`
	Provider       rawProviderConfig `yaml:"provider"`
}

type rawProviderConfig struct {
	Active    string            `yaml:"active"`
	OllamaURL string            `yaml:"ollama_url"`
	Models    map[string]string `yaml:"models"`
	APIKeys   map[string]string `yaml:"api_keys"`
}

// Default returns the configuration used when no config file exists:
// local Ollama, conventional folders, credentials from the environment.
func Default() *Config {
	return fromRaw(rawConfig{})
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. A missing file is not an error; defaults apply. The
// secrets file is loaded into the environment first so that
// ${OPENAI_API_KEY}-style references in the config expand from it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		loadSecrets(cfg.SecretsPath)
		cfg.Provider.APIKeys = envAPIKeys()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Secrets first, so env expansion below can see them.
	secretsPath := raw.SecretsFile
	if secretsPath == "" {
		secretsPath = defaultSecretsPath
	}
	loadSecrets(secretsPath)

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))
	raw = rawConfig{}
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := fromRaw(raw)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromRaw(raw rawConfig) *Config {
	cfg := &Config{
		DBPath:         raw.Database,
		ResumeDir:      raw.ResumeDir,
		CoverLetterDir: raw.CoverLetterDir,
		SecretsPath:    raw.SecretsFile,
		HTTPTimeout:    defaultHTTPTimeout,
		Provider: ProviderConfig{
			Active:    raw.Provider.Active,
			OllamaURL: raw.Provider.OllamaURL,
			Models:    make(map[string]string, len(defaultModels)),
			APIKeys:   make(map[string]string),
		},
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.ResumeDir == "" {
		cfg.ResumeDir = defaultResumeDir
	}
	if cfg.CoverLetterDir == "" {
		cfg.CoverLetterDir = defaultCoverLetterDir
	}
	if cfg.SecretsPath == "" {
		cfg.SecretsPath = defaultSecretsPath
	}
	if cfg.Provider.Active == "" {
		cfg.Provider.Active = ProviderOllama
	}
	if cfg.Provider.OllamaURL == "" {
		cfg.Provider.OllamaURL = defaultOllamaURL
	}
	if raw.HTTPTimeout != "" {
		if d, err := time.ParseDuration(raw.HTTPTimeout); err == nil {
			cfg.HTTPTimeout = d
		}
	}

	for name, m := range defaultModels {
		cfg.Provider.Models[name] = m
	}
	for name, m := range raw.Provider.Models {
		if m != "" {
			cfg.Provider.Models[name] = m
		}
	}
	for name, key := range envAPIKeys() {
		cfg.Provider.APIKeys[name] = key
	}
	for name, key := range raw.Provider.APIKeys {
		if key != "" {
			cfg.Provider.APIKeys[name] = key
		}
	}
	return cfg
}

// loadSecrets merges the .env-style secrets file into the process
// environment. A missing file is fine; explicit env vars win.
func loadSecrets(path string) {
	if path == "" {
		return
	}
	_ = godotenv.Load(path)
}

func envAPIKeys() map[string]string {
	keys := make(map[string]string)
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		keys[ProviderOpenAI] = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		keys[ProviderAnthropic] = v
	}
	return keys
}

func validate(cfg *Config) error {
	known := false
	for _, p := range Providers {
		if cfg.Provider.Active == p {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("provider.active must be one of %v, got %q", Providers, cfg.Provider.Active)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	return nil
}
