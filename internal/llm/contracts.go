package llm

import (
	"context"

	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
)

// OrderFields is the normalized shape we want from the LLM. Every field is
// optional on our side regardless of what the provider schema marks required:
// an empty string means the model did not recognize it.
type OrderFields struct {
	CustomerName  string `json:"customerName,omitempty"`
	MobileNumber  string `json:"mobileNumber,omitempty"`
	RequestType   string `json:"requestType,omitempty"`   // NEW | MNP | REPLACEMENT, unchecked
	Network       string `json:"network,omitempty"`       // AIRTEL | JIO | VI, unchecked
	PlanAmount    string `json:"planAmount,omitempty"`    // digits only after sanitize
	Address       string `json:"address,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"` // UPI | Card | Cash on Delivery, unchecked
	TransactionID string `json:"transactionId,omitempty"`
}

// Empty reports whether nothing at all was recognized.
func (f OrderFields) Empty() bool {
	return f == OrderFields{}
}

type ExtractRequest struct {
	Text    string
	Catalog catalog.Catalog // plan table offered to the model as context
}

// FieldExtractor is the interface the order session depends on.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (OrderFields, []byte /*rawJSON*/, error)
}
