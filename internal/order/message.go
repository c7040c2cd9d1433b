package order

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/sim-order-desk/constants"
	"github.com/joseph-ayodele/sim-order-desk/internal/entity"
)

const messageHeader = "*New SIM Order*"

// FormatMessage renders the outbound order text. Line order is fixed; the
// transaction line appears only for UPI with a reference and the location
// line only when a link is set. Free-text values are flattened to one line.
// Output has no trailing newline.
func FormatMessage(d entity.OrderDraft, total, deliveryCharge int) string {
	lines := []string{
		messageHeader,
		"Name: " + singleLine(d.CustomerName),
		"Mobile: " + singleLine(d.MobileNumber),
		"Request Type: " + d.RequestType.Label(),
		"Network: " + d.Network.Label(),
		"Plan: " + rupees(PlanAmount(d.SelectedPlan)),
		"Delivery Charge: " + rupees(deliveryCharge),
		"Total: " + rupees(total),
		"Payment: " + d.PaymentMethod.Label(),
	}
	if txn := singleLine(d.TransactionReference); d.PaymentMethod == constants.PaymentUPI && txn != "" {
		lines = append(lines, "Txn ID: "+txn)
	}
	lines = append(lines, "Address: "+singleLine(d.Address))
	if link := singleLine(d.LocationLink); link != "" {
		lines = append(lines, "Location: "+link)
	}
	return strings.Join(lines, "\n")
}

// singleLine replaces line breaks and other control characters with spaces
// and collapses runs of whitespace.
func singleLine(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func rupees(n int) string {
	return constants.CurrencySymbol + strconv.Itoa(n)
}
