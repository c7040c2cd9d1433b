package entity

import "github.com/joseph-ayodele/sim-order-desk/constants"

// OrderDraft is the single in-progress order owned by an editing session.
// Empty strings mean "not set" for the optional fields.
type OrderDraft struct {
	CustomerName         string                  `json:"customer_name"`
	MobileNumber         string                  `json:"mobile_number"`
	RequestType          constants.RequestType   `json:"request_type"`
	Network              constants.Network       `json:"network"`
	SelectedPlan         string                  `json:"selected_plan,omitempty"`
	Address              string                  `json:"address"`
	LocationLink         string                  `json:"location_link,omitempty"`
	PaymentMethod        constants.PaymentMethod `json:"payment_method"`
	TransactionReference string                  `json:"transaction_reference,omitempty"` // UPI only
}

// Quote holds the values derived from a draft: total payable and payment targets.
type Quote struct {
	PlanAmount     int    `json:"plan_amount"`
	DeliveryCharge int    `json:"delivery_charge"`
	Total          int    `json:"total"`
	PaymentURI     string `json:"payment_uri,omitempty"`
	QRRequestURL   string `json:"qr_request_url,omitempty"`
}

// FinalizedOrder is what a successful send produces.
type FinalizedOrder struct {
	Draft       OrderDraft `json:"draft"`
	Quote       Quote      `json:"quote"`
	Message     string     `json:"message"`
	ShareLink   string     `json:"share_link,omitempty"`
	ReferenceID string     `json:"reference_id"`
}
