package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/todo-sync-be/internal/config"
)

var (
	// ErrEmptyPrompt is returned before any network call when there is
	// nothing to send.
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrUpstream is returned when the text-generation service answers with
	// an error status.
	ErrUpstream = errors.New("text generation service returned an error")
	// ErrInvalidResponse is returned when the reply cannot be decoded.
	ErrInvalidResponse = errors.New("invalid response from text generation service")
)

// Generator sends a prompt to an external language model and returns its
// text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the generator selected by cfg.RelayProvider.
func New(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.RelayProvider {
	case "dashscope":
		return NewDashScopeClient(cfg.RelayURL, cfg.RelayAPIKey, cfg.RelayModel, cfg.RelayTimeout), nil
	case "gemini":
		g, err := NewGeminiClient(ctx, cfg.RelayAPIKey, cfg.RelayModel)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown relay provider %q", cfg.RelayProvider)
	}
}
