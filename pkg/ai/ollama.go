package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/davidtran-dev/meeting-notes/pkg/config"
)

// OllamaClient is a minimal client for a locally hosted Ollama server
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaClient creates an Ollama client using values from the provided config.
func NewOllamaClient(cfg *config.OllamaConfig) *OllamaClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OllamaClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Model returns the model currently in use
func (o *OllamaClient) Model() string {
	return o.model
}

// SetModel overrides the model used for generation
func (o *OllamaClient) SetModel(model string) {
	o.model = model
}

// GenerateRequest is the shape for /api/generate requests
type GenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	System  string                 `json:"system,omitempty"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// GenerateResponse is a minimal response shape for /api/generate
type GenerateResponse struct {
	Response string `json:"response"`
}

// tagsResponse is the shape of /api/tags
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate sends a prompt with a system instruction and returns the raw completion
func (o *OllamaClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	reqBody := GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		System: system,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.3,
			"top_p":       0.9,
			"max_tokens":  2000,
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := o.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var gr GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	return strings.TrimSpace(gr.Response), nil
}

// ListModels returns the model names available on the Ollama server
func (o *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	endpoint := o.baseURL + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var tr tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tr.Models))
	for _, m := range tr.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// ResolveModel checks that the configured model is available on the server and
// falls back to the first available model when it is not.
func (o *OllamaClient) ResolveModel(ctx context.Context) error {
	models, err := o.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("ollama connection check failed: %w", err)
	}

	for _, name := range models {
		if strings.Contains(name, o.model) {
			return nil
		}
	}

	if len(models) == 0 {
		return fmt.Errorf("no models available on ollama server")
	}

	o.model = models[0]
	return nil
}
