package services

import (
	"context"
	"time"

	"github.com/isdelr/todo-sync-be/internal/models"
	"github.com/isdelr/todo-sync-be/internal/relay"
	"github.com/rs/zerolog"
)

// AssistantServiceProvider defines the interface for the conversational
// assistant.
type AssistantServiceProvider interface {
	SmartParse(ctx context.Context, text string, history []models.ChatMessage, tasks []models.Task) (string, error)
}

// AssistantService builds prompts from the user's tasks and conversation
// and relays them to a text generator.
type AssistantService struct {
	generator    relay.Generator
	timeout      time.Duration
	historyLimit int
}

// NewAssistantService creates a new AssistantService. Each relay call is
// bounded by timeout.
func NewAssistantService(generator relay.Generator, timeout time.Duration, historyLimit int) *AssistantService {
	return &AssistantService{generator: generator, timeout: timeout, historyLimit: historyLimit}
}

// SmartParse returns the generator's reply. Failures and timeouts come back
// as relay errors.
func (s *AssistantService) SmartParse(ctx context.Context, text string, history []models.ChatMessage, tasks []models.Task) (string, error) {
	logger := zerolog.Ctx(ctx)
	prompt := BuildPrompt(text, history, tasks, s.historyLimit)
	logger.Debug().Str("prompt", prompt).Msg("Sending prompt to text generator")

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Smart parse failed")
		return "", relayError(MsgRelayFailed+": "+err.Error(), err)
	}

	logger.Debug().Str("reply", reply).Dur("elapsed", time.Since(start)).Msg("Text generator replied")
	return reply, nil
}
