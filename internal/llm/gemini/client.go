package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
	"github.com/joseph-ayodele/sim-order-desk/internal/common"
	"github.com/joseph-ayodele/sim-order-desk/internal/llm"
)

// Config for the Gemini extractor.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration // per-call bound applied on top of the caller's ctx
}

// generator is the slice of *genai.GenerativeModel we use.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client wraps the Gemini client and model configured for JSON order extraction.
type Client struct {
	cfg    Config
	client *genai.Client
	model  generator
	log    *slog.Logger
}

var _ llm.FieldExtractor = (*Client)(nil)

// NewClient initializes the Gemini model with a response schema so the
// provider itself is steered towards the order shape.
func NewClient(ctx context.Context, cfg Config, c catalog.Catalog, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = common.DefaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = common.DefaultLLMTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = ResponseSchema()
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(llm.BuildSystemPrompt(c))}}

	return &Client{cfg: cfg, client: client, model: model, log: logger}, nil
}

// ResponseSchema mirrors llm.BuildOrderJSONSchema(true) in Gemini's schema type.
func ResponseSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	enum := func(values []string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Enum: values}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"customerName":  str("Customer full name"),
			"mobileNumber":  str("10 digit mobile number"),
			"requestType":   enum(llm.RequestTypeVocabulary),
			"network":       enum(llm.NetworkVocabulary),
			"planAmount":    str("Plan price in rupees, digits only"),
			"address":       str("Delivery address"),
			"paymentMethod": enum(llm.PaymentMethodVocabulary),
			"transactionId": str("UPI transaction reference"),
		},
		Required: llm.RequiredFields,
	}
}

// Close releases underlying resources.
func (c *Client) Close() {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		c.log.Warn("gemini.close_error", "error", err)
	}
}

// ExtractFields implements llm.FieldExtractor. The catalog in req is ignored:
// the plan table was baked into the system instruction at construction.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (llm.OrderFields, []byte, error) {
	if c == nil || c.model == nil {
		return llm.OrderFields{}, nil, fmt.Errorf("gemini extractor is not initialized")
	}
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"provider", "gemini",
		"model", c.cfg.Model,
		"text_len", len(req.Text),
	)
	if strings.TrimSpace(req.Text) == "" {
		return llm.OrderFields{}, nil, fmt.Errorf("empty input text")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(callCtx, genai.Text(llm.BuildUserPrompt(req)))
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.OrderFields{}, nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := firstText(resp)
	if err != nil {
		c.log.Error("llm.extract.no_candidates",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.OrderFields{}, nil, err
	}

	out, cleaned, err := llm.DecodeOrderFields([]byte(text), c.log)
	if err != nil {
		c.log.Error("llm.extract.parse_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.OrderFields{}, cleaned, err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"request_type", out.RequestType,
		"network", out.Network,
		"plan", out.PlanAmount,
		"payment_method", out.PaymentMethod,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, cleaned, nil
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil ||
		resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("unexpected response type from gemini: %T", resp.Candidates[0].Content.Parts[0])
	}
	return b.String(), nil
}
