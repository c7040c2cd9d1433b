package constants

// Fixed commercial constants. The system bills in a single currency.
const (
	DeliveryCharge = 50
	CurrencyCode   = "INR"
	CurrencySymbol = "₹"
)
