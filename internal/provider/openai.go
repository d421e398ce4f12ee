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

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAI calls the OpenAI /v1/chat/completions endpoint.
type OpenAI struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenAI creates a provider targeting the OpenAI API. An empty baseURL
// selects the public endpoint.
func NewOpenAI(baseURL string, httpClient *http.Client) *OpenAI {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAI{baseURL: baseURL, httpClient: httpClient}
}

func (p *OpenAI) Name() string { return "openai" }

// chatRequest mirrors the OpenAI /v1/chat/completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse mirrors the relevant fields of the OpenAI response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends prompt as a single user message and returns the first
// choice's content.
func (p *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal openai request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create openai request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.Credential)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read openai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("openai: %s", string(respBytes)),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("parse openai response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error (%s): %s", chatResp.Error.Type, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// CheckAvailability performs a minimal real completion with a trivial
// prompt and a one-token cap using the supplied credential.
func (p *OpenAI) CheckAvailability(ctx context.Context, req Request) (bool, string) {
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
