package models

import (
	"time"
	"unicode/utf8"
)

// AnalysisRecord captures one full analysis outcome for history and
// telemetry. Records are append-only; a transmission failure loses the
// record (no retry, no persisted queue).
type AnalysisRecord struct {
	ID              string         `json:"id"`
	Timestamp       int64          `json:"ts"` // epoch milliseconds
	ReviewText      string         `json:"review"`
	Label           string         `json:"label"`
	Confidence      float64        `json:"confidence"`
	NormalizedScore float64        `json:"normalized_score"`
	Sentiment       string         `json:"sentiment"`
	ActionCode      ActionCode     `json:"action_taken"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// TruncateReview enforces the MaxReviewLength cap on review text. The cap
// counts characters, not bytes, so multibyte runes are never split.
func TruncateReview(text string) string {
	if utf8.RuneCountInString(text) <= MaxReviewLength {
		return text
	}
	runes := 0
	for i := range text {
		if runes == MaxReviewLength {
			return text[:i]
		}
		runes++
	}
	return text
}

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
