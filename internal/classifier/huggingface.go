package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sentimentlab/reviewpulse/internal/models"
	"go.uber.org/zap"
)

const DefaultHFEndpoint = "https://api-inference.huggingface.co/models"

// DefaultHFModel is a binary SST-2 sentiment model returning
// POSITIVE/NEGATIVE labels with a score per candidate.
const DefaultHFModel = "distilbert-base-uncased-finetuned-sst-2-english"

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfCandidate struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HFClassifier calls the HuggingFace inference API for a text-classification
// model and keeps the top-scoring candidate.
type HFClassifier struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

func NewHFClassifier(apiKey, model, endpoint string, timeout time.Duration, logger *zap.Logger) *HFClassifier {
	if model == "" {
		model = DefaultHFModel
	}
	if endpoint == "" {
		endpoint = DefaultHFEndpoint
	}
	return &HFClassifier{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (c *HFClassifier) Model() string {
	return c.model
}

func (c *HFClassifier) Classify(ctx context.Context, text string) (models.ClassificationResult, error) {
	body, err := json.Marshal(hfRequest{Inputs: text})
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("encoding inference request: %w", err)
	}

	url := c.endpoint + "/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("building inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Inference request failed", zap.Error(err), zap.String("model", c.model))
		return models.ClassificationResult{}, fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("reading inference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Inference request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.model))
		return models.ClassificationResult{}, fmt.Errorf("inference request: status %d", resp.StatusCode)
	}

	// The API nests candidates one level deep for a single input:
	// [[{"label": "POSITIVE", "score": 0.99}, ...]]
	var nested [][]hfCandidate
	if err := json.Unmarshal(raw, &nested); err != nil || len(nested) == 0 || len(nested[0]) == 0 {
		return models.ClassificationResult{}, fmt.Errorf("%w: unexpected inference response shape", models.ErrMalformedClassifierOutput)
	}

	best := nested[0][0]
	for _, cand := range nested[0][1:] {
		if cand.Score > best.Score {
			best = cand
		}
	}

	return models.ParseClassification(best.Label, best.Score)
}
