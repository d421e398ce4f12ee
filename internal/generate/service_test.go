package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/RichLyon/JobAppTracker/internal/provider"
)

type fakeProvider struct {
	name      string
	available bool
	detail    string
	response  string
	err       error

	probed  bool
	called  bool
	lastReq provider.Request
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(_ context.Context, req provider.Request) (string, error) {
	f.called = true
	f.lastReq = req
	return f.response, f.err
}

func (f *fakeProvider) CheckAvailability(_ context.Context, _ provider.Request) (bool, string) {
	f.probed = true
	return f.available, f.detail
}

type fakeRegistry struct {
	active    string
	providers map[string]*fakeProvider
	templates map[string]provider.Request
}

func (r *fakeRegistry) Active() string { return r.active }

func (r *fakeRegistry) Resolve(name string) (provider.Provider, provider.Request, error) {
	if name == "" {
		name = r.active
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, provider.Request{}, fmt.Errorf("unknown provider: %s", name)
	}
	return p, r.templates[name], nil
}

type fakeProfiles struct {
	profile model.Profile
}

func (f *fakeProfiles) GetProfile() (model.Profile, error) { return f.profile, nil }

func newTestService(reg *fakeRegistry, profiles *fakeProfiles) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewService(reg, profiles, logger)
	s.now = func() time.Time { return time.Date(2024, time.March, 5, 15, 4, 5, 0, time.UTC) }
	return s
}

func singleProviderSetup(p *fakeProvider) *fakeRegistry {
	return &fakeRegistry{
		active:    p.name,
		providers: map[string]*fakeProvider{p.name: p},
		templates: map[string]provider.Request{p.name: {Model: "default-model", Credential: "cred"}},
	}
}

func TestGenerateHappyPath(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: true, response: "text"}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	got, err := s.Generate(context.Background(), "a prompt", "", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "text" {
		t.Errorf("got %q", got)
	}
	if !p.probed {
		t.Error("provider was not probed before the call")
	}
	if p.lastReq.Model != "default-model" {
		t.Errorf("model = %q, want registry default", p.lastReq.Model)
	}
	if p.lastReq.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", p.lastReq.Temperature)
	}
	if p.lastReq.Credential != "cred" {
		t.Error("credential not threaded through the request")
	}
}

func TestGenerateProbeFailureSkipsCall(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: false, detail: "connect: connection refused"}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	_, err := s.Generate(context.Background(), "a prompt", "", "")
	var unavail *model.ProviderUnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("got %v, want ProviderUnavailableError", err)
	}
	if unavail.Provider != "ollama" || unavail.Detail != "connect: connection refused" {
		t.Errorf("error = %+v", unavail)
	}
	if model.HTTPStatus(err) != http.StatusServiceUnavailable {
		t.Errorf("HTTPStatus = %d, want 503", model.HTTPStatus(err))
	}
	if p.called {
		t.Error("generation was attempted despite failed probe")
	}
}

func TestGenerateUnknownProviderIsUnavailable(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: true}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	_, err := s.Generate(context.Background(), "a prompt", "bedrock", "")
	var unavail *model.ProviderUnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("got %v, want ProviderUnavailableError", err)
	}
	if unavail.Provider != "bedrock" {
		t.Errorf("Provider = %q", unavail.Provider)
	}
}

func TestGenerateModelOverrideAndPrefixedModel(t *testing.T) {
	local := &fakeProvider{name: "ollama", available: true, response: "local"}
	cloud := &fakeProvider{name: "openai", available: true, response: "cloud"}
	reg := &fakeRegistry{
		active:    "ollama",
		providers: map[string]*fakeProvider{"ollama": local, "openai": cloud},
		templates: map[string]provider.Request{
			"ollama": {Model: "qwen2.5:14b"},
			"openai": {Model: "gpt-4o-mini", Credential: "sk"},
		},
	}
	s := newTestService(reg, &fakeProfiles{})

	if _, err := s.Generate(context.Background(), "p", "", "llama3"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if local.lastReq.Model != "llama3" {
		t.Errorf("model = %q, want explicit override", local.lastReq.Model)
	}

	// A prefixed model selects both provider and model.
	if _, err := s.Generate(context.Background(), "p", "", "openai/gpt-4.1"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !cloud.called {
		t.Fatal("prefixed model did not select the openai provider")
	}
	if cloud.lastReq.Model != "gpt-4.1" {
		t.Errorf("model = %q, want prefix stripped", cloud.lastReq.Model)
	}
}

func TestGenerateNormalizes404(t *testing.T) {
	p := &fakeProvider{
		name:      "ollama",
		available: true,
		err:       &model.HTTPError{StatusCode: http.StatusNotFound, Err: errors.New("not found")},
	}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	_, err := s.Generate(context.Background(), "p", "", "")
	var unavail *model.ProviderUnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("got %v, want ProviderUnavailableError", err)
	}
	if !strings.Contains(unavail.Detail, "check the provider configuration") {
		t.Errorf("Detail = %q", unavail.Detail)
	}
}

func TestGenerateNormalizesConnectionRefused(t *testing.T) {
	p := &fakeProvider{
		name:      "ollama",
		available: true,
		err:       errors.New("dial tcp 127.0.0.1:11434: connect: connection refused"),
	}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	_, err := s.Generate(context.Background(), "p", "", "")
	var unavail *model.ProviderUnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("got %v, want ProviderUnavailableError", err)
	}
	if !strings.Contains(unavail.Detail, "make sure the service is running") {
		t.Errorf("Detail = %q", unavail.Detail)
	}
}

func TestGenerateWrapsOtherErrors(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: true, err: errors.New("model exploded")}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	_, err := s.Generate(context.Background(), "p", "", "")
	var genErr *model.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("got %v, want GenerationError", err)
	}
	if model.HTTPStatus(err) != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d, want 500", model.HTTPStatus(err))
	}
	if !strings.Contains(genErr.Error(), "model exploded") {
		t.Errorf("raw message lost: %v", genErr)
	}
}

func TestResumeSuggestionsPrompt(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: true, response: "- bullet"}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	if _, err := s.ResumeSuggestions(context.Background(), "We need a Go engineer.", "", ""); err != nil {
		t.Fatalf("ResumeSuggestions: %v", err)
	}

	prompt := p.lastReq.Prompt
	for _, want := range []string{
		"We need a Go engineer.",
		"Skills to emphasize",
		"Experience to highlight",
		"Achievements that would be most relevant",
		"Keywords to include",
		"actionable bullet points",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestResumeSuggestionsRequiresDescription(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: true}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	_, err := s.ResumeSuggestions(context.Background(), "   ", "", "")
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestCoverLetterPromptContents(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: true, response: "letter"}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	_, err := s.CoverLetter(context.Background(), CoverLetterInput{
		JobDescription: "Build backend services.",
		Company:        "Acme",
		Position:       "Engineer",
		ResumeText:     "Go, SQL, ten years of shipping.",
		Applicant:      model.Applicant{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100", Address: "1 Main St"},
	})
	if err != nil {
		t.Fatalf("CoverLetter: %v", err)
	}

	prompt := p.lastReq.Prompt
	for _, want := range []string{
		"Acme",
		"Engineer",
		"Jane Doe",
		"March 5, 2024", // injected clock, "Month Day, Year"
		"Go, SQL, ten years of shipping.",
		"300-400 words",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestCoverLetterBackfillsFromProfile(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: true, response: "letter"}
	profiles := &fakeProfiles{profile: model.Profile{
		FullName: "Stored Name",
		Email:    "stored@example.com",
		Phone:    "555-0111",
	}}
	s := newTestService(singleProviderSetup(p), profiles)

	_, err := s.CoverLetter(context.Background(), CoverLetterInput{
		Company:   "Acme",
		Position:  "Engineer",
		Applicant: model.Applicant{Name: "Explicit Name"},
	})
	if err != nil {
		t.Fatalf("CoverLetter: %v", err)
	}

	prompt := p.lastReq.Prompt
	if !strings.Contains(prompt, "Explicit Name") {
		t.Error("explicit applicant name was overridden")
	}
	if strings.Contains(prompt, "Stored Name") {
		t.Error("stored name used despite explicit value")
	}
	if !strings.Contains(prompt, "stored@example.com") {
		t.Error("email not backfilled from profile")
	}
}

func TestCoverLetterOmitsEmptyContactLines(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: true, response: "letter"}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	prompt, err := s.buildCoverLetterPrompt(CoverLetterInput{
		Company:   "Acme",
		Position:  "Engineer",
		Applicant: model.Applicant{Name: "Jane Doe"},
	})
	if err != nil {
		t.Fatalf("buildCoverLetterPrompt: %v", err)
	}
	if strings.Contains(prompt, "\n\n\n") {
		t.Error("empty contact fields left blank lines in the prompt")
	}
}

func TestCoverLetterRequiresCompanyAndPosition(t *testing.T) {
	p := &fakeProvider{name: "ollama", available: true}
	s := newTestService(singleProviderSetup(p), &fakeProfiles{})

	for _, in := range []CoverLetterInput{
		{Position: "Engineer"},
		{Company: "Acme"},
	} {
		_, err := s.CoverLetter(context.Background(), in)
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("input %+v: got %v, want ValidationError", in, err)
		}
	}
}
