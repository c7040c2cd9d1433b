package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

var (
	rePlanAmount = regexp.MustCompile(`^(?i:rs\.?|inr|₹)?\s*(\d+)(?:\.0+)?\s*(?i:/-|rs\.?|inr)?$`)
	reFence      = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
	nullish      = []string{"null", "none", "n/a", "na", "unknown", "-"}
)

// NormalizeAndSanitizeJSON
// - Renames known synonyms (customer_name -> customerName, utr -> transactionId)
// - Drops null/empty/placeholder values
// - Coerces numbers and bools to strings
// - Normalizes planAmount to bare digits, dropping values that are not whole rupees
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}
	if m == nil {
		return nil, nil, fmt.Errorf("sanitize: not a json object")
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			// don't overwrite existing value if already present
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to our schema
	renamed("name", "customerName")
	renamed("customer_name", "customerName")
	renamed("mobile", "mobileNumber")
	renamed("phone", "mobileNumber")
	renamed("mobile_number", "mobileNumber")
	renamed("request_type", "requestType")
	renamed("operator", "network")
	renamed("plan", "planAmount")
	renamed("plan_amount", "planAmount")
	renamed("payment_method", "paymentMethod")
	renamed("transactionID", "transactionId")
	renamed("transaction_id", "transactionId")
	renamed("utr", "transactionId")

	// 2) remove unknown keys
	allowed := make(map[string]struct{}, len(knownFields))
	for _, k := range knownFields {
		allowed[k] = struct{}{}
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	// 3) coerce scalars to trimmed strings, drop null / "" / placeholders
	for _, k := range knownFields {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
			continue
		case map[string]any, []any:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			delete(m, k)
			dropped = append(dropped, k+"(type)")
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(nullish, strings.ToLower(s)) {
			delete(m, k)
			dropped = append(dropped, k+"(empty)")
			continue
		}
		m[k] = s
	}

	// 4) field specific normalization
	if v, ok := m["planAmount"].(string); ok {
		if amount, ok := NormalizePlanAmount(v); ok {
			m["planAmount"] = amount
		} else {
			delete(m, "planAmount")
			dropped = append(dropped, "planAmount(format)")
		}
	}
	if v, ok := m["mobileNumber"].(string); ok {
		m["mobileNumber"] = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(v)
	}
	if v, ok := m["transactionId"].(string); ok {
		m["transactionId"] = strings.ToUpper(strings.ReplaceAll(v, " ", ""))
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// NormalizePlanAmount turns "₹349", "Rs. 349/-", "349.00" or "1,299" into bare
// digits. Fractional amounts are rejected: plans are priced in whole rupees.
func NormalizePlanAmount(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	match := rePlanAmount.FindStringSubmatch(s)
	if match == nil {
		return "", false
	}
	digits := strings.TrimLeft(match[1], "0")
	if digits == "" {
		digits = "0"
	}
	return digits, true
}

// StripCodeFence removes a surrounding ```json fence some models emit even in JSON mode.
func StripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if m := reFence.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return content
}
