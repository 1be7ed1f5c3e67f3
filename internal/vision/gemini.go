package vision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/edgard/civilkabot/internal/config"
)

var documentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"brand":            {Type: genai.TypeString, Description: "Manufacturer in Latin upper case. Empty if unknown."},
		"model":            {Type: genai.TypeString, Description: "Commercial model name. Empty if unknown."},
		"year":             {Type: genai.TypeInteger, Description: "Year of manufacture, 0 if unknown."},
		"engine_volume_cc": {Type: genai.TypeInteger, Description: "Engine displacement in cm³ from field P.1, 0 if unknown."},
		"fuel_type":        {Type: genai.TypeString, Description: "gasoline, diesel, electric, lpg or empty."},
		"confidence":       {Type: genai.TypeNumber, Description: "Certainty from 0 to 100."},
		"error":            {Type: genai.TypeString, Description: "Why the document could not be read. Empty on success."},
	},
	Required: []string{"brand", "model", "year", "engine_volume_cc", "fuel_type", "confidence", "error"},
}

type geminiAnalyzer struct {
	client        *genai.Client
	log           *slog.Logger
	contentConfig *genai.GenerateContentConfig
	modelName     string
	maxRetries    int
	retryDelay    time.Duration
}

// NewGeminiAnalyzer creates an Analyzer backed by the Gemini API.
func NewGeminiAnalyzer(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	temperature := cfg.Temperature
	contentConfig := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: DocumentPrompt}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    documentSchema,
	}

	logger := log.With("component", "gemini_vision")
	logger.Info("Gemini vision analyzer initialized", "model", cfg.ModelName)
	return &geminiAnalyzer{
		client:        gi,
		log:           logger,
		contentConfig: contentConfig,
		modelName:     cfg.ModelName,
		maxRetries:    cfg.MaxRetries,
		retryDelay:    time.Duration(cfg.RetryDelaySeconds) * time.Second,
	}, nil
}

func (a *geminiAnalyzer) Name() string {
	return ProviderGemini
}

func (a *geminiAnalyzer) Analyze(ctx context.Context, img Image) (Result, error) {
	if len(img.Data) == 0 || img.MIMEType == "" {
		return Result{}, fmt.Errorf("image data and MIME type are required for analysis")
	}
	a.log.DebugContext(ctx, "Analyzing document photo", "image_size", len(img.Data), "mime_type", img.MIMEType)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText("Extract the vehicle data from this document photo."),
			genai.NewPartFromBytes(img.Data, img.MIMEType),
		}, genai.RoleUser),
	}

	resp, err := a.generateContentWithRetries(ctx, contents)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if blocked(resp) {
		a.log.WarnContext(ctx, "Gemini request blocked", "reason", resp.PromptFeedback.BlockReason)
		return Result{}, &RecognitionError{Reason: "Фото отклонено фильтром безопасности"}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Result{}, fmt.Errorf("%w: gemini returned empty content", ErrUnavailable)
	}

	res, err := ParseResponse(resp.Text(), time.Now())
	if err != nil {
		a.log.WarnContext(ctx, "Could not use Gemini document reply", "error", err)
		return Result{}, err
	}
	a.log.DebugContext(ctx, "Document analyzed", "brand", res.Record.Brand, "engine_volume_cc", res.Record.EngineVolumeCC, "confidence", res.Confidence)
	return res, nil
}

func (a *geminiAnalyzer) generateContentWithRetries(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	var err error
	for i := 0; i <= a.maxRetries; i++ {
		var resp *genai.GenerateContentResponse
		resp, err = a.client.Models.GenerateContent(ctx, a.modelName, contents, a.contentConfig)
		if err == nil {
			return resp, nil
		}

		if code, ok := apiErrorCode(err); ok && (code == 500 || code == 503) && i < a.maxRetries {
			a.log.InfoContext(ctx, "Retrying Gemini API call due to retriable APIError", "attempt", i+1, "delay", a.retryDelay, "code", code)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.retryDelay):
			}
			continue
		}

		a.log.ErrorContext(ctx, "Gemini API call failed", "attempt", i+1, "error", err)
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	return nil, err
}

func blocked(resp *genai.GenerateContentResponse) bool {
	if resp.PromptFeedback == nil {
		return false
	}
	reason := resp.PromptFeedback.BlockReason
	return reason != "" && reason != genai.BlockedReasonUnspecified
}

// apiErrorCode extracts the HTTP status from a genai.APIError, which the SDK
// may return by value or by pointer.
func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
