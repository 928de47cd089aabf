package classifier

import (
	"context"
	"errors"

	"github.com/sentimentlab/reviewpulse/internal/models"
)

// ErrNotReady indicates no classifier backend is configured or initialized.
var ErrNotReady = errors.New("classifier not ready")

// Classifier labels review text with a sentiment and a confidence.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.ClassificationResult, error)
	Model() string
}
