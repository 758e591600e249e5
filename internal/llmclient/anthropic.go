package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient calls the Anthropic Messages API.
// See: https://docs.anthropic.com/en/api/messages
type AnthropicClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

// NewAnthropicClient creates a client. If apiKey is empty, it falls back to
// the ANTHROPIC_API_KEY env var.
func NewAnthropicClient(apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return &AnthropicClient{
		http:    &http.Client{Timeout: 60 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.anthropic.com/v1/messages",
	}, nil
}

func (a *AnthropicClient) Name() string { return "Anthropic" }
func (a *AnthropicClient) Close() error { return nil }

type anthropicReq struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

type anthropicResp struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends one Messages call and returns the first text block of the
// reply.
func (a *AnthropicClient) Complete(ctx context.Context, r Request) (string, error) {
	body, _ := json.Marshal(anthropicReq{
		Model:     r.Model,
		MaxTokens: r.MaxTokens,
		Messages:  r.Messages,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("anthropic-version", anthropicVersion)
	if a.apiKey != "" {
		req.Header.Set("x-api-key", a.apiKey)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		const max = 2048
		if len(raw) > max {
			raw = raw[:max]
		}
		err := fmt.Errorf("anthropic: unexpected status %s: %s", resp.Status, string(raw))
		if resp.StatusCode == http.StatusBadRequest && strings.Contains(string(raw), "context_length") {
			return "", NewPermanentError(err)
		}
		return "", err
	}

	var out anthropicResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	for _, block := range out.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyReply
}
