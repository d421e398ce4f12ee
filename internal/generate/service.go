package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/RichLyon/JobAppTracker/internal/provider"
)

// Sampling temperature for all document generation. Moderate on purpose:
// low enough to stay grounded in the resume, high enough to avoid
// boilerplate letters.
const generationTemperature = 0.7

// ProviderRegistry is the slice of the provider registry the service
// needs: resolution and probing.
type ProviderRegistry interface {
	Resolve(name string) (provider.Provider, provider.Request, error)
	Active() string
}

// ProfileSource supplies the stored applicant profile for contact-block
// backfill.
type ProfileSource interface {
	GetProfile() (model.Profile, error)
}

// Service builds prompts and dispatches them to the active (or explicitly
// requested) provider, normalizing provider failures into the error
// taxonomy.
type Service struct {
	registry ProviderRegistry
	profiles ProfileSource
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a generation service. The registry is the single
// owning settings instance for the process, passed in explicitly.
func NewService(registry ProviderRegistry, profiles ProfileSource, logger *slog.Logger) *Service {
	return &Service{
		registry: registry,
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate sends prompt to a provider and returns the raw generated text.
// Resolution order: explicit providerName/modelName arguments, then the
// registry's active provider and its default model. A modelName of the
// form "<provider>/<model>" selects both at once.
//
// The provider is probed first; if the probe fails the call is never
// attempted and a ProviderUnavailableError carries the probe detail.
func (s *Service) Generate(ctx context.Context, prompt, providerName, modelName string) (string, error) {
	if strings.Contains(modelName, "/") {
		parts := strings.SplitN(modelName, "/", 2)
		providerName, modelName = parts[0], parts[1]
	}

	p, req, err := s.registry.Resolve(providerName)
	if err != nil {
		name := providerName
		if name == "" {
			name = s.registry.Active()
		}
		return "", &model.ProviderUnavailableError{Provider: name, Detail: err.Error()}
	}

	if ok, detail := p.CheckAvailability(ctx, req); !ok {
		return "", &model.ProviderUnavailableError{Provider: p.Name(), Detail: detail}
	}

	if modelName != "" {
		req.Model = modelName
	}
	req.Prompt = prompt
	req.Temperature = generationTemperature

	s.logger.Debug("dispatching generation", "provider", p.Name(), "model", req.Model, "prompt_len", len(prompt))
	text, err := p.Generate(ctx, req)
	if err != nil {
		return "", normalizeError(p.Name(), err)
	}
	return text, nil
}

// normalizeError maps raw provider failures onto the error taxonomy.
// Endpoint-not-found and connection-refused conditions mean the provider
// is effectively down (503); everything else is a generation failure (500).
func normalizeError(providerName string, err error) error {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return &model.ProviderUnavailableError{
			Provider: providerName,
			Detail:   "The API endpoint was not found. Please check the provider configuration.",
		}
	}
	if strings.Contains(err.Error(), "connection refused") {
		return &model.ProviderUnavailableError{
			Provider: providerName,
			Detail:   "Connection refused. Please make sure the service is running.",
		}
	}
	return &model.GenerationError{Provider: providerName, Err: err}
}

// ResumeSuggestions asks the provider for tailoring suggestions for the
// given job description: skills to emphasize, experience to highlight,
// relevant achievements and keywords, as actionable bullet points.
func (s *Service) ResumeSuggestions(ctx context.Context, jobDescription, providerName, modelName string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return "", &model.ValidationError{Field: "job_description"}
	}

	var buf bytes.Buffer
	err := resumeSuggestionsTemplate.Execute(&buf, struct{ JobDescription string }{jobDescription})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return s.Generate(ctx, buf.String(), providerName, modelName)
}

// CoverLetterInput is everything the cover-letter prompt needs. Applicant
// fields left empty are backfilled from the stored profile.
type CoverLetterInput struct {
	JobDescription string
	Company        string
	Position       string
	ResumeText     string
	Applicant      model.Applicant
	Provider       string // optional override
	Model          string // optional override
}

// CoverLetter generates the body text of a cover letter.
func (s *Service) CoverLetter(ctx context.Context, in CoverLetterInput) (string, error) {
	prompt, err := s.buildCoverLetterPrompt(in)
	if err != nil {
		return "", err
	}
	return s.Generate(ctx, prompt, in.Provider, in.Model)
}

func (s *Service) buildCoverLetterPrompt(in CoverLetterInput) (string, error) {
	if strings.TrimSpace(in.Company) == "" {
		return "", &model.ValidationError{Field: "company_name"}
	}
	if strings.TrimSpace(in.Position) == "" {
		return "", &model.ValidationError{Field: "position"}
	}

	applicant, err := s.backfillApplicant(in.Applicant)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = coverLetterTemplate.Execute(&buf, struct {
		Position       string
		Company        string
		Date           string
		Applicant      model.Applicant
		JobDescription string
		ResumeText     string
	}{
		Position:       in.Position,
		Company:        in.Company,
		Date:           s.now().Format(promptDateLayout),
		Applicant:      applicant,
		JobDescription: in.JobDescription,
		ResumeText:     in.ResumeText,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

// backfillApplicant fills any unset contact field from the stored profile.
func (s *Service) backfillApplicant(a model.Applicant) (model.Applicant, error) {
	if a.Name != "" && a.Email != "" && a.Phone != "" && a.Address != "" {
		return a, nil
	}
	p, err := s.profiles.GetProfile()
	if err != nil {
		return model.Applicant{}, err
	}
	if a.Name == "" {
		a.Name = p.FullName
	}
	if a.Email == "" {
		a.Email = p.Email
	}
	if a.Phone == "" {
		a.Phone = p.Phone
	}
	if a.Address == "" {
		a.Address = p.Address
	}
	return a, nil
}
