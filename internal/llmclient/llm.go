// Package llmclient holds the thin provider clients for the one outbound
// model call the tool makes. Clients focus on the API call itself; callers
// own degradation (there are no retries anywhere in the pipeline).
package llmclient

import (
	"context"
	"errors"
)

// ErrEmptyReply indicates the provider answered without usable text.
var ErrEmptyReply = errors.New("llmclient: empty reply from model")

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion call: model identifier, output token cap,
// and the ordered chat messages.
type Request struct {
	Model     string
	MaxTokens int
	Messages  []Message
}

// Client is the AI completion capability. Implementations convert every
// transport or HTTP failure into an ordinary error return.
type Client interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
	Close() error
}

// PermanentError indicates an error that will not resolve by calling again
// with the same input (e.g., the prompt exceeds the model's context window).
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
