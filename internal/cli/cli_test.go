package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/sim-order-desk/internal/common"
)

func setEnv(t *testing.T, extra map[string]string) {
	t.Helper()
	for _, k := range []string{
		"UPI_ID", "MERCHANT_NAME", "DELIVERY_CHARGE", "ORDER_RECIPIENT", "QR_ENDPOINT", "QR_SIZE",
		"LLM_PROVIDER", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "LLM_TEMPERATURE", "LLM_TIMEOUT",
		"LOCATION_LAT", "LOCATION_LON", "LOCATION_ENDPOINT", "LOCATION_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("UPI_ID", "shop@upi")
	t.Setenv("MERCHANT_NAME", "Shop")
	t.Setenv("ORDER_RECIPIENT", "+91 98765 43210")
	for k, v := range extra {
		t.Setenv(k, v)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := RootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// chatServer answers every chat/completions call with the given content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPlansCommand(t *testing.T) {
	out, err := run(t, "", "plans")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 9)
	assert.Equal(t, "NEW          AIRTEL  ₹399, ₹449, ₹599", lines[0])
	assert.Contains(t, out, "REPLACEMENT  JIO     no plans")
}

func TestComposeUPIOrder(t *testing.T) {
	setEnv(t, nil)

	out, err := run(t, "", "compose",
		"--name", "Ravi Kumar", "--mobile", "9876543210",
		"--type", "new", "--network", "jio",
		"--address", "221B MG Road, Pune",
		"--payment", "upi", "--txn", "UTR123456789",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "*New SIM Order*\nName: Ravi Kumar\nMobile: 9876543210\n")
	assert.Contains(t, out, "Total: ₹399\nPayment: UPI\nTxn ID: UTR123456789\n")
	assert.Contains(t, out, "UPI link:  upi://pay?pa=shop%40upi&pn=Shop&am=399&cu=INR\n")
	assert.Contains(t, out, "QR image:  https://api.qrserver.com/v1/create-qr-code/?size=250x250&data=upi%3A%2F%2Fpay")
	assert.Contains(t, out, "WhatsApp:  https://wa.me/919876543210?text=%2ANew%20SIM%20Order%2A%0A")
	assert.Contains(t, out, "Reference: ")
}

func TestComposeCashOnDeliveryHidesUPI(t *testing.T) {
	setEnv(t, nil)

	out, err := run(t, "", "compose",
		"--name", "Asha", "--mobile", "9876543210", "--network", "VI", "--plan", "₹399",
		"--address", "Pune", "--location", "https://www.google.com/maps?q=1,2",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "Plan: ₹399\nDelivery Charge: ₹50\nTotal: ₹449\nPayment: Cash on Delivery\nAddress: Pune\nLocation: https://www.google.com/maps?q=1,2\n")
	assert.NotContains(t, out, "UPI link:")
}

func TestComposeIncomplete(t *testing.T) {
	setEnv(t, nil)

	out, err := run(t, "", "compose", "--name", "Ravi", "--payment", "UPI")

	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, out, "Order incomplete, missing: mobileNumber, address, transactionReference\n")
	assert.NotContains(t, out, "WhatsApp:")
}

func TestComposeNoPlansOffered(t *testing.T) {
	setEnv(t, nil)

	out, err := run(t, "", "compose",
		"--name", "Ravi", "--mobile", "9876543210", "--address", "Pune",
		"--type", "REPLACEMENT", "--network", "JIO",
	)

	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, out, "missing: selectedPlan")
	assert.Contains(t, out, "No plans are offered for SIM Replacement on Jio.")
}

func TestComposeRejectsBadFlags(t *testing.T) {
	setEnv(t, nil)

	_, err := run(t, "", "compose", "--network", "BSNL")
	assert.ErrorContains(t, err, "unknown network")

	_, err = run(t, "", "compose", "--plan", "349")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = run(t, "", "compose", "--locate", "--location", "x")
	assert.Error(t, err)
}

func TestComposeWithAIPrefill(t *testing.T) {
	srv := chatServer(t, `{"customerName":"Ravi Kumar","mobileNumber":"9876543210","network":"JIO","planAmount":"349","paymentMethod":"UPI"}`)
	setEnv(t, map[string]string{
		"LLM_PROVIDER":    "openai",
		"OPENAI_API_KEY":  "test-key",
		"OPENAI_BASE_URL": srv.URL,
	})

	out, err := run(t, "", "compose",
		"--text", "Ravi Kumar 9876543210 wants jio 349, paying by upi",
		"--address", "221B MG Road, Pune", "--txn", "UTR1",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "AI prefill filled: network, paymentMethod, customerName, mobileNumber, selectedPlan\n")
	assert.Contains(t, out, "Network: Jio\nPlan: ₹349\n")
	assert.Contains(t, out, "Txn ID: UTR1\n")
}

func TestComposeAIPrefillFailureContinues(t *testing.T) {
	srv := chatServer(t, `sorry`)
	setEnv(t, map[string]string{
		"LLM_PROVIDER":    "openai",
		"OPENAI_API_KEY":  "test-key",
		"OPENAI_BASE_URL": srv.URL,
	})

	out, err := run(t, "", "compose",
		"--text", "hello", "--name", "Asha", "--mobile", "9876543210", "--address", "Pune",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "AI prefill failed, continuing with typed fields")
	assert.Contains(t, out, "Name: Asha")
}

func TestComposeAIPrefillWithoutKey(t *testing.T) {
	setEnv(t, nil)

	out, err := run(t, "", "compose",
		"--text", "hello", "--name", "Asha", "--mobile", "9876543210", "--address", "Pune",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "AI prefill skipped: no API key for gemini\n")
}

func TestComposeLocateStatic(t *testing.T) {
	setEnv(t, map[string]string{"LOCATION_LAT": "18.52", "LOCATION_LON": "73.85"})

	out, err := run(t, "", "compose",
		"--name", "Asha", "--mobile", "9876543210", "--address", "Pune", "--locate", "--metrics",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "Location: https://www.google.com/maps?q=18.52,73.85\n")
	assert.Contains(t, out, `simorder_location_total{outcome="ok"} 1`)
	assert.Contains(t, out, "simorder_finalized_total 1")
}

func TestComposeInvalidConfig(t *testing.T) {
	setEnv(t, map[string]string{"LLM_PROVIDER": "claude"})

	_, err := run(t, "", "compose")

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestExtractCommand(t *testing.T) {
	srv := chatServer(t, `{"name":"Asha","operator":"VI","utr":"abc 123"}`)
	setEnv(t, map[string]string{
		"LLM_PROVIDER":    "openai",
		"OPENAI_API_KEY":  "test-key",
		"OPENAI_BASE_URL": srv.URL,
	})

	out, err := run(t, "Asha, vi sim, paid upi abc 123\n", "extract")

	require.NoError(t, err)
	assert.JSONEq(t, `{"customerName":"Asha","network":"VI","transactionId":"ABC123"}`, out)
}

func TestInputText(t *testing.T) {
	got, err := inputText(strings.NewReader("ignored"), []string{"from args"})
	require.NoError(t, err)
	assert.Equal(t, "from args", got)

	got, err = inputText(strings.NewReader("  from stdin \n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	_, err = inputText(strings.NewReader("   "), nil)
	assert.Error(t, err)
}

func TestComposeAIPrefillWithNothingUsable(t *testing.T) {
	srv := chatServer(t, `{"network":"BSNL","requestType":"FOO"}`)
	setEnv(t, map[string]string{
		"LLM_PROVIDER":    "openai",
		"OPENAI_API_KEY":  "test-key",
		"OPENAI_BASE_URL": srv.URL,
	})

	out, err := run(t, "", "compose",
		"--text", "bsnl sim please", "--name", "Asha", "--mobile", "9876543210", "--address", "Pune",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "AI prefill failed, continuing with typed fields")
	assert.NotContains(t, out, "AI prefill filled:")
}
