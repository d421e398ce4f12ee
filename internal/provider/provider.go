package provider

import "context"

// Request carries everything a provider needs for one generation call.
// Credentials travel here explicitly; providers never read them from the
// process environment.
type Request struct {
	Model       string
	Prompt      string
	Credential  string
	Temperature float64
	MaxTokens   int // 0 means provider default
}

// Provider is a pluggable text-generation backend. Implementations are the
// closed set {Ollama, OpenAI, Anthropic}, selected through the Registry's
// lookup table.
type Provider interface {
	Name() string

	// Generate sends the prompt and returns the raw generated text.
	// Transport and API failures come back as errors; an empty completion
	// is an empty string, not an error.
	Generate(ctx context.Context, req Request) (string, error)

	// CheckAvailability probes whether the provider can serve a request
	// right now. It never returns an error: any transport or auth failure
	// means (false, detail).
	CheckAvailability(ctx context.Context, req Request) (bool, string)
}
