package llm

// Closed vocabularies the model is told to use. Values outside them are
// ignored by the reconciler rather than rejected here.
var (
	RequestTypeVocabulary   = []string{"NEW", "MNP", "REPLACEMENT"}
	NetworkVocabulary       = []string{"AIRTEL", "JIO", "VI"}
	PaymentMethodVocabulary = []string{"UPI", "Card", "Cash on Delivery"}

	// RequiredFields is what the provider schema demands. We never rely on it.
	RequiredFields = []string{"customerName", "mobileNumber", "requestType", "network"}

	knownFields = []string{
		"customerName", "mobileNumber", "requestType", "network",
		"planAmount", "address", "paymentMethod", "transactionId",
	}
)

// BuildOrderJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// The strict form carries enums and required fields and is sent to providers.
// The lenient form only pins types; we validate model output against it locally.
func BuildOrderJSONSchema(strict bool) map[string]any {
	props := make(map[string]any, len(knownFields))
	for _, k := range knownFields {
		props[k] = map[string]any{"type": "string"}
	}
	out := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
	if !strict {
		return out
	}

	props["customerName"] = map[string]any{"type": "string", "minLength": 1}
	props["mobileNumber"] = map[string]any{"type": "string", "minLength": 1}
	props["requestType"] = enumProp(RequestTypeVocabulary)
	props["network"] = enumProp(NetworkVocabulary)
	props["paymentMethod"] = enumProp(PaymentMethodVocabulary)
	props["planAmount"] = map[string]any{"type": "string", "pattern": `^\d+$`}
	out["required"] = RequiredFields
	return out
}

func enumProp(values []string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}
