package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// DecodeOrderFields turns raw model content into OrderFields: strip fences,
// sanitize, validate against the lenient schema, then unmarshal.
// The returned bytes are the sanitized document.
func DecodeOrderFields(content []byte, logger *slog.Logger) (OrderFields, []byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	body := []byte(StripCodeFence(string(content)))
	if len(body) == 0 {
		return OrderFields{}, nil, fmt.Errorf("empty model output")
	}
	if !json.Valid(body) {
		return OrderFields{}, body, fmt.Errorf("model returned non-json output")
	}

	cleaned, _, err := NormalizeAndSanitizeJSON(body, logger)
	if err != nil {
		return OrderFields{}, body, err
	}
	if err := ValidateJSONAgainstSchema(BuildOrderJSONSchema(false), cleaned); err != nil {
		logger.Error("llm.extract.schema_validation_failed", "error", err, "content", string(cleaned))
		return OrderFields{}, cleaned, fmt.Errorf("schema validation failed: %w", err)
	}

	var out OrderFields
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return OrderFields{}, cleaned, fmt.Errorf("unmarshal fields: %w", err)
	}
	if out.Empty() {
		return OrderFields{}, cleaned, fmt.Errorf("no order fields recognized")
	}
	return out, cleaned, nil
}
