package constants

import "strings"

// PaymentMethod is how the customer settles the order.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentUPI            PaymentMethod = "UPI"
	PaymentCard           PaymentMethod = "CARD"
)

var allPaymentMethods = []PaymentMethod{PaymentCashOnDelivery, PaymentUPI, PaymentCard}

// PaymentMethods returns the payment methods in declaration order.
func PaymentMethods() []PaymentMethod {
	return append([]PaymentMethod(nil), allPaymentMethods...)
}

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCashOnDelivery:
		return "Cash on Delivery"
	case PaymentUPI:
		return "UPI"
	case PaymentCard:
		return "Card"
	}
	return string(p)
}

func (p PaymentMethod) Valid() bool {
	for _, v := range allPaymentMethods {
		if v == p {
			return true
		}
	}
	return false
}

// CanonicalizePaymentMethod accepts both the enum spelling and the labels the
// extraction model is told to use ("UPI", "Card", "Cash on Delivery").
func CanonicalizePaymentMethod(input string) (PaymentMethod, bool) {
	normalized := normalize(input)
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]PaymentMethod{
		"cod":              PaymentCashOnDelivery,
		"cash":             PaymentCashOnDelivery,
		"cash on delivery": PaymentCashOnDelivery,
		"gpay":             PaymentUPI,
		"google pay":       PaymentUPI,
		"phonepe":          PaymentUPI,
		"paytm":            PaymentUPI,
		"credit card":      PaymentCard,
		"debit card":       PaymentCard,
	}
	if pm, ok := synonyms[normalized]; ok {
		return pm, true
	}

	for _, pm := range allPaymentMethods {
		if normalized == strings.ToLower(string(pm)) || normalized == strings.ToLower(pm.Label()) {
			return pm, true
		}
	}
	return "", false
}
