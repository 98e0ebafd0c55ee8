package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when the model answers without usable text.
var ErrEmptyResponse = errors.New("model returned no text")

// Client generates model answers.
type Client interface {
	// GenerateJSON returns the model's JSON answer with any code fences removed.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	Close() error
}

// NewClient returns the client for config.Provider. A nil config uses DefaultConfig.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Provider != ProviderGemini {
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient talks to the Gemini API.
type GeminiClient struct {
	genai  *genai.Client
	config *Config
	log    *logrus.Entry
}

// NewGeminiClient connects to Gemini with apiKey.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key is required")
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		genai:  c,
		config: config,
		log:    observability.Logger().WithFields(logrus.Fields{"component": "llm", "provider": config.Provider}),
	}, nil
}

// GenerateJSON asks the tier's model for a JSON response.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.genai.GenerativeModel(name)
	model.SetTemperature(c.config.Temperature)
	model.SetCandidateCount(1)
	model.ResponseMIMEType = "application/json"

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with %s: %w", name, err)
	}

	fields := logrus.Fields{"model": name, "tier": tier, "duration": time.Since(start).String()}
	if resp.UsageMetadata != nil {
		fields["prompt_tokens"] = resp.UsageMetadata.PromptTokenCount
		fields["output_tokens"] = resp.UsageMetadata.CandidatesTokenCount
	}
	c.log.WithFields(fields).Debug("model responded")

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	if c.genai == nil {
		return nil
	}
	return c.genai.Close()
}

// extractTextFromResponse concatenates the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates", ErrEmptyResponse)
	}

	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("%w: finish reason %s", ErrEmptyResponse, cand.FinishReason)
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: finish reason %s", ErrEmptyResponse, cand.FinishReason)
	}
	return b.String(), nil
}
