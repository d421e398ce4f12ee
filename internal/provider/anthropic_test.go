package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicGenerate_Success(t *testing.T) {
	var gotKey, gotVersion string
	var gotReq anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "Dear Hiring Manager,"},
				{"type": "text", "text": " I write..."},
			},
		})
	}))
	t.Cleanup(srv.Close)

	p := NewAnthropic(srv.URL, srv.Client())
	got, err := p.Generate(context.Background(), Request{
		Model:       "claude-3-5-sonnet-20241022",
		Prompt:      "write",
		Credential:  "sk-ant-test",
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Dear Hiring Manager, I write..." {
		t.Errorf("got %q", got)
	}
	if gotKey != "sk-ant-test" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion != anthropicVersion {
		t.Errorf("anthropic-version = %q", gotVersion)
	}
	// max_tokens is mandatory on this API; the default must be applied.
	if gotReq.MaxTokens != anthropicDefaultMaxTokens {
		t.Errorf("max_tokens = %d, want default %d", gotReq.MaxTokens, anthropicDefaultMaxTokens)
	}
}

func TestAnthropicGenerate_APIError(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, map[string]any{
		"error": map[string]string{"type": "overloaded_error", "message": "try later"},
	})

	p := NewAnthropic(srv.URL, client)
	_, err := p.Generate(context.Background(), Request{Model: "m", Prompt: "x", Credential: "k"})
	if err == nil {
		t.Fatal("expected error for API error body")
	}
}

func TestAnthropicCheckAvailability_NoCredential(t *testing.T) {
	p := NewAnthropic("http://127.0.0.1:1", &http.Client{})
	ok, detail := p.CheckAvailability(context.Background(), Request{Model: "m"})
	if ok {
		t.Fatal("expected unavailable without credential")
	}
	if detail != "API key not configured" {
		t.Errorf("detail = %q", detail)
	}
}
