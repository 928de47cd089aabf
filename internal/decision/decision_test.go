package decision

import (
	"strings"
	"testing"

	"github.com/sentimentlab/reviewpulse/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDecide_PositiveBands(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       models.ActionCode
	}{
		{"strong negative sentiment", 0.10, models.ActionOfferCoupon},
		{"low boundary belongs to coupon", 0.40, models.ActionOfferCoupon},
		{"just above low boundary", 0.4000001, models.ActionRequestFeedback},
		{"middle of feedback band", 0.55, models.ActionRequestFeedback},
		{"just below high boundary", 0.6999999, models.ActionRequestFeedback},
		{"high boundary belongs to referral", 0.70, models.ActionAskReferral},
		{"strong positive sentiment", 0.95, models.ActionAskReferral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.confidence, models.LabelPositive)
			assert.Equal(t, tt.want, got.Code)
		})
	}
}

func TestDecide_NegativeBands(t *testing.T) {
	// NEGATIVE inverts the score, so the bands flip: coupon iff
	// confidence >= 0.60, referral iff confidence <= 0.30.
	tests := []struct {
		name       string
		confidence float64
		want       models.ActionCode
	}{
		{"confident negative review", 0.95, models.ActionOfferCoupon},
		{"coupon boundary", 0.60, models.ActionOfferCoupon},
		{"uncertain negative review", 0.45, models.ActionRequestFeedback},
		{"middle of feedback band", 0.55, models.ActionRequestFeedback},
		{"referral boundary", 0.30, models.ActionAskReferral},
		{"barely negative review", 0.05, models.ActionAskReferral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.confidence, models.LabelNegative)
			assert.Equal(t, tt.want, got.Code)
		})
	}
}

func TestDecide_UnrecognizedLabel(t *testing.T) {
	// Unknown labels pin the normalized score at 0.5 regardless of
	// confidence, which always lands in the feedback band.
	for _, confidence := range []float64{0.0, 0.2, 0.5, 0.99, 1.0} {
		got := Decide(confidence, "UNKNOWN_LABEL")
		assert.Equal(t, models.ActionRequestFeedback, got.Code)
	}
	assert.Equal(t, models.ActionRequestFeedback, Decide(0.9, "positive").Code,
		"label comparison is case-sensitive")
}

func TestDecide_Messages(t *testing.T) {
	referral := Decide(0.95, models.LabelPositive)
	assert.True(t, strings.Contains(referral.Message, "thrilled"))

	coupon := Decide(0.95, models.LabelNegative)
	assert.True(t, strings.Contains(coupon.Message, "sorry"))
}

func TestDecide_ActionConstants(t *testing.T) {
	a := Decide(0.95, models.LabelPositive)
	assert.Equal(t, "#43a047", a.Color)
	assert.Equal(t, "action-referral", a.StyleClass)
	assert.NotEmpty(t, a.Icon)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.95, Normalize(0.95, models.LabelPositive))
	assert.InDelta(t, 0.05, Normalize(0.95, models.LabelNegative), 1e-9)
	assert.Equal(t, 0.5, Normalize(0.99, "SOMETHING_ELSE"))

	// Out-of-range confidence is clamped rather than allowed to escape
	// the three bands.
	assert.Equal(t, 0.0, Normalize(-0.5, models.LabelPositive))
	assert.Equal(t, 1.0, Normalize(-0.5, models.LabelNegative))
	assert.Equal(t, 1.0, Normalize(1.5, models.LabelPositive))
}

func TestBucket(t *testing.T) {
	assert.Equal(t, "negative", Bucket(0.40))
	assert.Equal(t, "neutral", Bucket(0.5))
	assert.Equal(t, "positive", Bucket(0.70))
}
