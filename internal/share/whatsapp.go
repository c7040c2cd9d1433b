// Package share builds the outbound link that hands a finalized order to the
// messaging app. Opening the link is the caller's business.
package share

import (
	"strings"
	"unicode"

	"github.com/joseph-ayodele/sim-order-desk/internal/payment"
)

const whatsAppBase = "https://wa.me/"

// WhatsAppLink returns https://wa.me/<digits>?text=<message>. Non-digits in
// the recipient are dropped; a blank recipient yields a chooser link without
// a number.
func WhatsAppLink(recipient, message string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, recipient)
	return whatsAppBase + digits + "?text=" + payment.EncodeComponent(message)
}
