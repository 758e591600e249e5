package llmclient

import (
	"context"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli *genai.Client
}

// NewGeminiClient creates a Gemini-backed client. A non-empty apiKey takes
// precedence; when empty the genai client falls back to GEMINI_API_KEY from
// the environment.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, geminiConfig(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli}, nil
}

func geminiConfig(apiKey string) *genai.ClientConfig {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	return cfg
}

func (g *GeminiClient) Name() string { return "Gemini" }
func (g *GeminiClient) Close() error { return nil }

// Complete flattens the chat messages into one text part and returns the
// first candidate's text.
func (g *GeminiClient) Complete(ctx context.Context, r Request) (string, error) {
	var sb strings.Builder
	for i, m := range r.Messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.Content)
	}

	cfg := &genai.GenerateContentConfig{}
	if r.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(r.MaxTokens)
	}
	resp, err := g.cli.Models.GenerateContent(ctx, r.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: sb.String()}}}},
		cfg,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	txt := resp.Candidates[0].Content.Parts[0].Text
	if txt == "" {
		return "", ErrEmptyReply
	}
	return txt, nil
}
