package llm

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sanitize(t *testing.T, raw string) (map[string]any, []string) {
	t.Helper()
	out, dropped, err := NormalizeAndSanitizeJSON([]byte(raw), quietLogger())
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	return m, dropped
}

func TestSanitizeRenamesSynonyms(t *testing.T) {
	m, dropped := sanitize(t, `{"name":"Ravi","phone":"98765 43210","operator":"JIO","plan":"349","utr":"utr 123"}`)

	assert.Equal(t, map[string]any{
		"customerName":  "Ravi",
		"mobileNumber":  "9876543210",
		"network":       "JIO",
		"planAmount":    "349",
		"transactionId": "UTR123",
	}, m)
	assert.Contains(t, dropped, "name->customerName")
	assert.Contains(t, dropped, "utr->transactionId")
}

func TestSanitizeKeepsCanonicalOverSynonym(t *testing.T) {
	m, _ := sanitize(t, `{"customerName":"Ravi Kumar","name":"R"}`)

	assert.Equal(t, "Ravi Kumar", m["customerName"])
	assert.NotContains(t, m, "name")
}

func TestSanitizeDropsUnknownNullAndPlaceholders(t *testing.T) {
	m, dropped := sanitize(t, `{"customerName":"Ravi","city":"Pune","address":null,"network":"N/A","paymentMethod":"  ","requestType":{"v":"NEW"}}`)

	assert.Equal(t, map[string]any{"customerName": "Ravi"}, m)
	assert.ElementsMatch(t, []string{"city(unknown)", "address(null)", "network(empty)", "paymentMethod(empty)", "requestType(type)"}, dropped)
}

func TestSanitizeCoercesScalars(t *testing.T) {
	m, _ := sanitize(t, `{"mobileNumber":9876543210,"planAmount":349}`)

	assert.Equal(t, "9876543210", m["mobileNumber"])
	assert.Equal(t, "349", m["planAmount"])
}

func TestSanitizePlanAmountFormat(t *testing.T) {
	m, dropped := sanitize(t, `{"planAmount":"cheapest one"}`)

	assert.NotContains(t, m, "planAmount")
	assert.Contains(t, dropped, "planAmount(format)")
}

func TestSanitizeRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`null`, `[1,2]`, `"text"`, `{`} {
		_, _, err := NormalizeAndSanitizeJSON([]byte(raw), quietLogger())
		assert.Error(t, err, raw)
	}
}

func TestNormalizePlanAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"349", "349", true},
		{"₹349", "349", true},
		{"Rs. 449/-", "449", true},
		{"INR 599", "599", true},
		{"349.00", "349", true},
		{"1,299", "1299", true},
		{"0399", "399", true},
		{"349.50", "", false},
		{"three hundred", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizePlanAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  {\"a\":1}  "))
}
