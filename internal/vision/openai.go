package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/edgard/civilkabot/internal/config"
)

type openAIAnalyzer struct {
	client *openai.Client
	log    *slog.Logger
	model  string
}

// NewOpenAIAnalyzer creates an Analyzer backed by an OpenAI compatible chat
// completions endpoint with image input.
func NewOpenAIAnalyzer(cfg config.OpenAIConfig, log *slog.Logger) (Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	aiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		aiConfig.BaseURL = cfg.BaseURL
	}

	logger := log.With("component", "openai_vision")
	logger.Info("OpenAI vision analyzer initialized", "model", cfg.Model, "base_url", aiConfig.BaseURL)
	return &openAIAnalyzer{
		client: openai.NewClientWithConfig(aiConfig),
		log:    logger,
		model:  cfg.Model,
	}, nil
}

func (a *openAIAnalyzer) Name() string {
	return ProviderOpenAI
}

func (a *openAIAnalyzer) Analyze(ctx context.Context, img Image) (Result, error) {
	if len(img.Data) == 0 || img.MIMEType == "" {
		return Result{}, fmt.Errorf("image data and MIME type are required for analysis")
	}

	dataURI := "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: DocumentPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: "Extract the vehicle data from this document photo."},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURI, Detail: openai.ImageURLDetailHigh}},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0,
	})
	if err != nil {
		a.log.ErrorContext(ctx, "Chat completion failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return Result{}, fmt.Errorf("%w: chat completion failed: %w", ErrUnavailable, err)
	}
	a.log.DebugContext(ctx, "Received document analysis",
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("%w: no response choices returned", ErrUnavailable)
	}

	res, err := ParseResponse(resp.Choices[0].Message.Content, time.Now())
	if err != nil {
		a.log.WarnContext(ctx, "Could not use OpenAI document reply", "error", err)
		return Result{}, err
	}
	return res, nil
}
