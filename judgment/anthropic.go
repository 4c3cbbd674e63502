package judgment

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-3-5-haiku-latest"

// AnthropicService nutzt die Messages-API von Anthropic.
type AnthropicService struct {
	client anthropic.Client
	config Config
}

// NewAnthropicService erstellt einen neuen Anthropic-Service.
func NewAnthropicService(cfg Config) (*AnthropicService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}

	return &AnthropicService{
		client: anthropic.NewClient(opts...),
		config: cfg,
	}, nil
}

// Complete sendet die Anfrage und verbindet alle Text-Blöcke der Antwort.
func (s *AnthropicService) Complete(ctx context.Context, systemInstruction, userPayload string) (string, error) {
	model := s.config.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	maxTokens := s.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	ctx, cancel := withTimeout(ctx, s.config.Timeout)
	defer cancel()

	msg, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemInstruction}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPayload)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(out.String()), nil
}
