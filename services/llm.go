package services

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"raahi/config"
)

// ─── Itinerary Model Client ───────────────────────────────────────────────────

// OpenAIGenerator produces itinerary text through an OpenAI-compatible chat
// API. It satisfies the itinerary package's Generator interface.
type OpenAIGenerator struct {
	client *goopenai.Client
	model  string
	log    *zap.SugaredLogger
}

// NewOpenAIGenerator builds the generator, or nil when no API key is set so
// the synthesizer goes straight to templates.
func NewOpenAIGenerator(cfg config.OpenAIConfig, log *zap.SugaredLogger) *OpenAIGenerator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if cfg.APIKey == "" {
		log.Warn("⚠️  OPENAI_API_KEY not set — itineraries will use template fallback")
		return nil
	}

	conf := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIGenerator{
		client: goopenai.NewClientWithConfig(conf),
		model:  model,
		log:    log,
	}
}

// Generate sends the prompt as a single-turn chat completion and returns the
// raw reply text.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: g.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	g.log.Debugf("🤖 Model reply: %d chars", len(resp.Choices[0].Message.Content))
	return resp.Choices[0].Message.Content, nil
}
