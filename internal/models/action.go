package models

// ActionCode identifies one of the three canned business actions.
type ActionCode string

const (
	ActionOfferCoupon     ActionCode = "OFFER_COUPON"
	ActionRequestFeedback ActionCode = "REQUEST_FEEDBACK"
	ActionAskReferral     ActionCode = "ASK_REFERRAL"
)

// Action is a canned business outcome shown to the user after an analysis.
// Every field is a fixed constant keyed by Code; actions carry no identity
// and are rebuilt on every analysis.
type Action struct {
	Code       ActionCode `json:"code"`
	Message    string     `json:"message"`
	Color      string     `json:"color"`
	Icon       string     `json:"icon"`
	StyleClass string     `json:"style_class"`
}
