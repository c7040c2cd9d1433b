// Package payment builds UPI payment deep links and the QR rendering request
// that encodes them.
package payment

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/sim-order-desk/constants"
)

const (
	upiScheme = "upi://pay"

	DefaultQREndpoint = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultQRSize     = 250
)

// BuildPaymentURI returns upi://pay?pa=..&pn=..&am=..&cu=INR with each value
// encoded on its own. Non-positive amounts have no payment target and yield "".
// Identical inputs always produce identical bytes.
func BuildPaymentURI(merchantID, merchantName string, amount int) string {
	if amount <= 0 {
		return ""
	}
	params := [][2]string{
		{"pa", merchantID},
		{"pn", merchantName},
		{"am", strconv.Itoa(amount)},
		{"cu", constants.CurrencyCode},
	}
	var b strings.Builder
	b.WriteString(upiScheme)
	for i, p := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(EncodeComponent(p[1]))
	}
	return b.String()
}

// QRRenderer describes the external QR image service.
type QRRenderer struct {
	Endpoint string
	Size     int
}

// DefaultQRRenderer is the public qrserver endpoint at 250x250.
func DefaultQRRenderer() QRRenderer {
	return QRRenderer{Endpoint: DefaultQREndpoint, Size: DefaultQRSize}
}

// RequestURL wraps the payment URI as the data parameter of the renderer.
// An empty URI yields "".
func (r QRRenderer) RequestURL(uri string) string {
	if uri == "" {
		return ""
	}
	endpoint := r.Endpoint
	if endpoint == "" {
		endpoint = DefaultQREndpoint
	}
	size := r.Size
	if size <= 0 {
		size = DefaultQRSize
	}
	dim := strconv.Itoa(size)
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "size=" + dim + "x" + dim + "&data=" + EncodeComponent(uri)
}

// BuildQRRequestURL uses the default renderer.
func BuildQRRequestURL(uri string) string {
	return DefaultQRRenderer().RequestURL(uri)
}

// EncodeComponent percent-encodes s for use as one query value, matching
// RFC 3986 component encoding (space becomes %20, not +).
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
