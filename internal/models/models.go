package models

import (
	"errors"
	"fmt"
	"math"
)

// Raw labels produced by the sentiment classifier. Comparison is
// case-sensitive; anything else counts as an unrecognized label.
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

// MaxReviewLength caps the review text carried in an AnalysisRecord.
const MaxReviewLength = 5000

// ErrMalformedClassifierOutput indicates the classifier returned a result
// that does not satisfy the ClassificationResult contract.
var ErrMalformedClassifierOutput = errors.New("malformed classifier output")

// ClassificationResult is the validated output of a single classifier call.
type ClassificationResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ParseClassification validates raw classifier output into a
// ClassificationResult. The label must be non-empty and the confidence a
// real number in [0,1]; anything else is rejected instead of silently
// defaulted.
func ParseClassification(label string, confidence float64) (ClassificationResult, error) {
	if label == "" {
		return ClassificationResult{}, fmt.Errorf("%w: empty label", ErrMalformedClassifierOutput)
	}
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return ClassificationResult{}, fmt.Errorf("%w: confidence %v out of [0,1]", ErrMalformedClassifierOutput, confidence)
	}
	return ClassificationResult{Label: label, Confidence: confidence}, nil
}

// Summary renders the result as a human-readable sentiment string,
// e.g. "POSITIVE (91.2% confidence)".
func (r ClassificationResult) Summary() string {
	return fmt.Sprintf("%s (%.1f%% confidence)", r.Label, r.Confidence*100)
}
