package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
)

func TestStrictSchemaAcceptsCompleteOrder(t *testing.T) {
	doc := `{"customerName":"Ravi","mobileNumber":"9876543210","requestType":"MNP","network":"VI","planAmount":"299","paymentMethod":"Cash on Delivery"}`

	assert.NoError(t, ValidateJSONAgainstSchema(BuildOrderJSONSchema(true), []byte(doc)))
}

func TestStrictSchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing required", `{"customerName":"Ravi","requestType":"NEW","network":"JIO"}`},
		{"unknown enum", `{"customerName":"Ravi","mobileNumber":"1","requestType":"NEW","network":"BSNL"}`},
		{"plan not digits", `{"customerName":"Ravi","mobileNumber":"1","requestType":"NEW","network":"JIO","planAmount":"₹349"}`},
		{"extra field", `{"customerName":"Ravi","mobileNumber":"1","requestType":"NEW","network":"JIO","city":"Pune"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateJSONAgainstSchema(BuildOrderJSONSchema(true), []byte(tt.doc)))
		})
	}
}

func TestLenientSchemaOnlyPinsTypes(t *testing.T) {
	schema := BuildOrderJSONSchema(false)

	assert.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"network":"BSNL"}`)))
	assert.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"network":5}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"extra":"x"}`)))
}

func TestCompileSchema(t *testing.T) {
	_, err := CompileSchema(BuildOrderJSONSchema(true))
	require.NoError(t, err)
}

func TestBuildSystemPromptListsPlans(t *testing.T) {
	p := BuildSystemPrompt(catalog.Default())

	assert.Contains(t, p, "NEW/AIRTEL: 399,449,599")
	assert.Contains(t, p, "REPLACEMENT/VI: 149")
	assert.NotContains(t, p, "REPLACEMENT/JIO")
	assert.Contains(t, p, "Cash on Delivery")
}

func TestBuildUserPromptTruncates(t *testing.T) {
	long := strings.Repeat("x", maxPromptText+10)

	p := BuildUserPrompt(ExtractRequest{Text: long})

	assert.Contains(t, p, "(truncated)")
	assert.Equal(t, maxPromptText, strings.Count(p, "x"))
}

func TestBuildUserPromptTruncatesOnRuneBoundary(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"rupee signs", strings.Repeat("₹", maxPromptText)},
		{"devanagari", strings.Repeat("नमस्ते ", maxPromptText/4)},
		{"offset by one byte", "a" + strings.Repeat("₹", maxPromptText)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildUserPrompt(ExtractRequest{Text: tt.text})

			assert.True(t, utf8.ValidString(p))
			assert.Contains(t, p, "(truncated)")
			body := strings.TrimSuffix(strings.TrimPrefix(p, "Customer message:\n"), "\n…(truncated)")
			assert.LessOrEqual(t, len(body), maxPromptText)
			assert.True(t, strings.HasPrefix(tt.text, body))
		})
	}
}
