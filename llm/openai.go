package llm

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-forever/errors"
)

type openAIProvider struct {
	client *openai.Client
	config Config
	logger *logrus.Logger
}

// NewOpenAI creates a Provider backed by the OpenAI chat completions API.
func NewOpenAI(cfg Config) Provider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &openAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logrus.StandardLogger(),
	}
}

func (p *openAIProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	const op = "llm.openAIProvider.Complete"

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Temperature: float32(p.config.Temperature),
		MaxTokens:   p.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	})
	if err != nil {
		p.logger.WithContext(ctx).WithError(err).Error("Completion request failed")
		return "", errors.Upstream(op, err, "Completion provider request failed")
	}

	if len(resp.Choices) == 0 {
		return "", errors.Upstream(op, nil, "Completion provider returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
