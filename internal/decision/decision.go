// Package decision maps a sentiment classification onto one of three
// canned business actions. It is pure: no I/O, no state, no errors.
package decision

import "github.com/sentimentlab/reviewpulse/internal/models"

// Thresholds on the normalized score. The boundary at 0.40 belongs to the
// coupon band, the boundary at 0.70 to the referral band.
const (
	couponThreshold   = 0.40
	referralThreshold = 0.70
)

var (
	offerCoupon = models.Action{
		Code:       models.ActionOfferCoupon,
		Message:    "We're sorry this one missed the mark. Here's a 15% off coupon for your next rental.",
		Color:      "#e53935",
		Icon:       "🎟️",
		StyleClass: "action-coupon",
	}
	requestFeedback = models.Action{
		Code:       models.ActionRequestFeedback,
		Message:    "Thanks for sharing! Mind telling us a bit more in a quick survey?",
		Color:      "#fb8c00",
		Icon:       "📝",
		StyleClass: "action-feedback",
	}
	askReferral = models.Action{
		Code:       models.ActionAskReferral,
		Message:    "We're thrilled you loved it! Refer a friend and you both get a free month.",
		Color:      "#43a047",
		Icon:       "📣",
		StyleClass: "action-referral",
	}
)

// Normalize rescales confidence so that 0 is the worst sentiment and 1 the
// best, regardless of raw label polarity. Unrecognized labels fix the score
// at 0.5 and ignore the confidence. The result is clamped to [0,1] so
// out-of-range confidence cannot escape the three bands.
func Normalize(confidence float64, label string) float64 {
	var score float64
	switch label {
	case models.LabelPositive:
		score = confidence
	case models.LabelNegative:
		score = 1 - confidence
	default:
		return 0.5
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Decide returns the business action for a classification. Total over its
// domain: every input maps to exactly one of the three actions.
func Decide(confidence float64, label string) models.Action {
	score := Normalize(confidence, label)
	switch {
	case score <= couponThreshold:
		return offerCoupon
	case score < referralThreshold:
		return requestFeedback
	default:
		return askReferral
	}
}

// Bucket names the sentiment band of a normalized score, using the same
// boundaries as Decide.
func Bucket(normalized float64) string {
	switch {
	case normalized <= couponThreshold:
		return "negative"
	case normalized < referralThreshold:
		return "neutral"
	default:
		return "positive"
	}
}
