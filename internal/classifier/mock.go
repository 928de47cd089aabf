package classifier

import (
	"context"
	"math/rand"
	"sync"

	"github.com/sentimentlab/reviewpulse/internal/models"
)

// MockClassifier fabricates classifications from a seeded random source.
// Kept from the demo's pre-integration variant; used when no API key is
// configured so the pipeline still runs end to end.
type MockClassifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockClassifier(seed int64) *MockClassifier {
	return &MockClassifier{rng: rand.New(rand.NewSource(seed))}
}

func (c *MockClassifier) Model() string {
	return "mock"
}

func (c *MockClassifier) Classify(_ context.Context, _ string) (models.ClassificationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	label := models.LabelPositive
	if c.rng.Intn(2) == 0 {
		label = models.LabelNegative
	}
	// Keep confidence away from 0.5 so the mock produces all three actions.
	confidence := 0.5 + c.rng.Float64()*0.5
	return models.ClassificationResult{Label: label, Confidence: confidence}, nil
}
