package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/joho/godotenv"

	"github.com/RichLyon/JobAppTracker/internal/config"
)

// secretEnvKeys maps provider names to the env-style keys used in the
// secrets file.
var secretEnvKeys = map[string]string{
	config.ProviderOpenAI:    "OPENAI_API_KEY",
	config.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// SettingsView is the redacted read model of provider settings. Credential
// values never appear; only whether one is configured.
type SettingsView struct {
	Provider   string
	Models     map[string]string
	Configured map[string]bool
}

// SettingsUpdate is a partial settings change. Nil/absent entries leave the
// current value untouched; clearing a model or credential requires an
// explicit empty string in the map.
type SettingsUpdate struct {
	Active  *string
	Models  map[string]string
	APIKeys map[string]string
}

// Registry owns provider settings and the provider lookup table. One
// instance per process, passed explicitly to whoever needs it.
//
// The mutex protects struct integrity only; concurrent administrative
// updates are last-write-wins and are not otherwise coordinated.
type Registry struct {
	mu          sync.Mutex
	active      string
	models      map[string]string
	credentials map[string]string

	providers   map[string]Provider
	secretsPath string
	logger      *slog.Logger
}

// NewRegistry builds the registry and its closed provider set from config.
func NewRegistry(cfg config.ProviderConfig, secretsPath string, httpClient *http.Client, logger *slog.Logger) *Registry {
	r := &Registry{
		active:      cfg.Active,
		models:      make(map[string]string, len(cfg.Models)),
		credentials: make(map[string]string, len(cfg.APIKeys)),
		secretsPath: secretsPath,
		logger:      logger,
	}
	for name, m := range cfg.Models {
		r.models[name] = m
	}
	for name, key := range cfg.APIKeys {
		r.credentials[name] = key
	}

	r.providers = map[string]Provider{
		config.ProviderOllama:    NewOllama(cfg.OllamaURL, httpClient),
		config.ProviderOpenAI:    NewOpenAI("", httpClient),
		config.ProviderAnthropic: NewAnthropic("", httpClient),
	}
	return r
}

// Active returns the name of the active provider.
func (r *Registry) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Settings returns the redacted settings view.
func (r *Registry) Settings() SettingsView {
	r.mu.Lock()
	defer r.mu.Unlock()

	view := SettingsView{
		Provider:   r.active,
		Models:     make(map[string]string, len(r.models)),
		Configured: make(map[string]bool, len(r.providers)),
	}
	for name, m := range r.models {
		view.Models[name] = m
	}
	for name := range r.providers {
		// Ollama needs no credential; it only needs a reachable endpoint.
		view.Configured[name] = name == config.ProviderOllama || r.credentials[name] != ""
	}
	return view
}

// UpdateSettings merges only the provided keys. Credentials that change are
// persisted to the secrets file when one is configured.
func (r *Registry) UpdateSettings(upd SettingsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if upd.Active != nil {
		if _, ok := r.providers[*upd.Active]; !ok {
			return fmt.Errorf("unknown provider: %s", *upd.Active)
		}
		r.active = *upd.Active
	}
	for name, m := range upd.Models {
		r.models[name] = m
	}

	changed := make(map[string]string)
	for name, key := range upd.APIKeys {
		r.credentials[name] = key
		if envKey, ok := secretEnvKeys[name]; ok {
			changed[envKey] = key
		}
	}

	if len(changed) > 0 && r.secretsPath != "" {
		if err := r.persistSecrets(changed); err != nil {
			return fmt.Errorf("persisting credentials: %w", err)
		}
	}
	return nil
}

// persistSecrets merges changed keys into the secrets file, preserving
// entries it does not own.
func (r *Registry) persistSecrets(changed map[string]string) error {
	existing, err := godotenv.Read(r.secretsPath)
	if err != nil {
		// First write creates the file.
		existing = make(map[string]string)
	}
	for k, v := range changed {
		existing[k] = v
	}
	return godotenv.Write(existing, r.secretsPath)
}

// Resolve returns the named provider (the active one when name is empty)
// together with a request template carrying its model and credential.
func (r *Registry) Resolve(name string) (Provider, Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		name = r.active
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, Request{}, fmt.Errorf("unknown provider: %s", name)
	}
	return p, Request{
		Model:      r.models[name],
		Credential: r.credentials[name],
	}, nil
}

// CheckAvailability probes the named provider (the active one when name is
// empty). It always returns the tuple form; an unknown name reports
// unavailable with detail rather than failing hard.
func (r *Registry) CheckAvailability(ctx context.Context, name string) (bool, string) {
	p, req, err := r.Resolve(name)
	if err != nil {
		if name != "" {
			return false, "Unknown provider: " + name
		}
		return false, err.Error()
	}
	return p.CheckAvailability(ctx, req)
}
