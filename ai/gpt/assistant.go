package gpt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"ClaudBot/entity"
	"ClaudBot/internal/config"
	"ClaudBot/internal/lib/sl"
)

const systemPrompt = `You are ClaudBot, the AI assistant for LitigationForce — a litigation intelligence platform. You communicate via WhatsApp.

Guidelines:
- Keep responses concise and well-structured (WhatsApp is a mobile medium).
- Use *bold* and _italic_ for emphasis (WhatsApp supports these).
- Avoid Markdown that WhatsApp cannot render (no headers, code fences, or links with display text).
- If a user asks a legal question, always note that your response is informational and not legal advice.
- You can help with case research, document summaries, timeline analysis, and general litigation strategy.`

// Assistant answers conversation histories with chat completions.
type Assistant struct {
	client    *openai.Client
	model     string
	maxTokens int
	log       *slog.Logger
}

// NewAssistant creates the completion assistant. Returns nil when no API
// key is configured; callers treat a nil assistant as the degraded
// "not configured" mode.
func NewAssistant(conf *config.Config, log *slog.Logger) *Assistant {
	if conf.OpenAI.ApiKey == "" {
		return nil
	}
	return &Assistant{
		client:    openai.NewClient(conf.OpenAI.ApiKey),
		model:     conf.OpenAI.Model,
		maxTokens: conf.OpenAI.MaxTokens,
		log:       log.With(sl.Module("assistant")),
	}
}

// Reply generates the assistant's next message for the given history,
// oldest turn first. The last turn is expected to be the user's.
func (a *Assistant) Reply(ctx context.Context, history []entity.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("empty completion")
	}

	a.log.With(
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	).Debug("completion done")

	return reply, nil
}
