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

// Ollama calls a locally running Ollama server. It needs no credential,
// only a reachable endpoint.
type Ollama struct {
	baseURL    string
	httpClient *http.Client
}

// NewOllama creates a provider targeting the Ollama server at baseURL
// (e.g. http://localhost:11434).
func NewOllama(baseURL string, httpClient *http.Client) *Ollama {
	return &Ollama{baseURL: baseURL, httpClient: httpClient}
}

func (o *Ollama) Name() string { return "ollama" }

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate sends prompt to /api/generate without streaming. A response
// body without a "response" field yields an empty string, not an error.
func (o *Ollama) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ollama response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("ollama: %s", string(respBytes)),
		}
	}

	var ollamaResp ollamaResponse
	if err := json.Unmarshal(respBytes, &ollamaResp); err != nil {
		return "", fmt.Errorf("parse ollama response: %w", err)
	}
	return ollamaResp.Response, nil
}

// CheckAvailability performs a lightweight reachability probe against the
// version endpoint. No generation happens.
func (o *Ollama) CheckAvailability(ctx context.Context, _ Request) (bool, string) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/version", nil)
	if err != nil {
		return false, err.Error()
	}

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return false, err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("version endpoint returned HTTP %d", resp.StatusCode)
	}
	return true, ""
}
