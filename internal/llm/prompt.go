package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/sim-order-desk/constants"
	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
)

const maxPromptText = 4000

// BuildSystemPrompt composes the system message: the vocabularies, the plan
// table and strict-but-practical formatting rules.
func BuildSystemPrompt(c catalog.Catalog) string {
	parts := []string{
		"You extract SIM card orders from customer messages for a mobile shop in India.",
		"Return ONLY a JSON object that matches the provided JSON Schema.",
		"requestType must be one of: " + strings.Join(RequestTypeVocabulary, ", ") + ". Porting an existing number is MNP; a lost or damaged SIM is REPLACEMENT.",
		"network must be one of: " + strings.Join(NetworkVocabulary, ", ") + ". Vodafone and Idea are VI.",
		"paymentMethod must be one of: " + strings.Join(PaymentMethodVocabulary, ", ") + ".",
		"planAmount is the plan price in rupees as digits only, without currency symbols.",
		"transactionId is the UPI reference (UTR) if the customer shared one.",
		"mobileNumber is the customer's 10 digit number.",
	}
	if plans := describePlans(c); plans != "" {
		parts = append(parts, "Plans on offer (type/network: prices): "+plans+".")
	}
	parts = append(parts, "Never output null. If a field is not present, omit it.")
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the free text, truncated on a rune boundary to
// keep requests small.
func BuildUserPrompt(req ExtractRequest) string {
	text := strings.TrimSpace(req.Text)

	var b strings.Builder
	b.WriteString("Customer message:\n")
	if len(text) > maxPromptText {
		cut := maxPromptText
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		b.WriteString(text[:cut])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}

func describePlans(c catalog.Catalog) string {
	var rows []string
	for _, rt := range constants.RequestTypes() {
		for _, nw := range constants.Networks() {
			plans := c.Plans(rt, nw)
			if len(plans) == 0 {
				continue
			}
			rows = append(rows, fmt.Sprintf("%s/%s: %s", rt, nw, strings.Join(plans, ",")))
		}
	}
	return strings.Join(rows, "; ")
}
