package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/RichLyon/JobAppTracker/internal/model"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"

	// The Messages API requires an explicit max_tokens.
	anthropicDefaultMaxTokens = 2048
)

// Anthropic calls the Anthropic Messages API.
type Anthropic struct {
	baseURL    string
	httpClient *http.Client
}

// NewAnthropic creates a provider targeting the Anthropic API. An empty
// baseURL selects the public endpoint.
func NewAnthropic(baseURL string, httpClient *http.Client) *Anthropic {
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	return &Anthropic{baseURL: baseURL, httpClient: httpClient}
}

func (p *Anthropic) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends prompt as a single user message and concatenates the text
// blocks of the response.
func (p *Anthropic) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	body, err := json.Marshal(anthropicRequest{
		Model:       req.Model,
		MaxTokens:   maxTokens,
		Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal anthropic request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create anthropic request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", req.Credential)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read anthropic response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("anthropic: %s", string(respBytes)),
		}
	}

	var msgResp anthropicResponse
	if err := json.Unmarshal(respBytes, &msgResp); err != nil {
		return "", fmt.Errorf("parse anthropic response: %w", err)
	}
	if msgResp.Error != nil {
		return "", fmt.Errorf("anthropic error (%s): %s", msgResp.Error.Type, msgResp.Error.Message)
	}

	var out bytes.Buffer
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}

// CheckAvailability performs a minimal real message with a trivial prompt
// and a one-token cap using the supplied credential.
func (p *Anthropic) CheckAvailability(ctx context.Context, req Request) (bool, string) {
	if req.Credential == "" {
		return false, "API key not configured"
	}
	probe := req
	probe.Prompt = "Hi"
	probe.Temperature = 0
	probe.MaxTokens = 1
	if _, err := p.Generate(ctx, probe); err != nil {
		return false, err.Error()
	}
	return true, ""
}
