package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sentimentlab/reviewpulse/internal/models"
	"go.uber.org/zap"
)

type sentimentResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// OpenAIClassifier labels reviews with a chat-completion model prompted to
// return strict JSON.
type OpenAIClassifier struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewOpenAIClassifier(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIClassifier {
	return &OpenAIClassifier{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (c *OpenAIClassifier) Model() string {
	return c.model
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (models.ClassificationResult, error) {
	prompt := fmt.Sprintf(`Classify the sentiment of the following movie review.

Return ONLY a JSON object with this structure, no prose:
{
    "label": "POSITIVE" or "NEGATIVE",
    "confidence": a number between 0 and 1
}

Review: %s`, text)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		c.logger.Error("Failed to get completion", zap.Error(err))
		return models.ClassificationResult{}, fmt.Errorf("openai classification: %w", err)
	}

	if len(resp.Choices) == 0 {
		return models.ClassificationResult{}, fmt.Errorf("%w: no choices returned", models.ErrMalformedClassifierOutput)
	}

	var parsed sentimentResponse
	response := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		c.logger.Error("Failed to parse completion",
			zap.Error(err),
			zap.String("response", response))
		return models.ClassificationResult{}, fmt.Errorf("%w: %v", models.ErrMalformedClassifierOutput, err)
	}

	return models.ParseClassification(parsed.Label, parsed.Confidence)
}
