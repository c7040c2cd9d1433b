package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/sim-order-desk/internal/common"
	"github.com/joseph-ayodele/sim-order-desk/internal/llm"
)

// Config for an OpenAI-compatible chat/completions endpoint. Zero values take
// the defaults from common.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Client extracts order fields through chat/completions in JSON mode.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

var _ llm.FieldExtractor = (*Client)(nil)

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = common.DefaultOpenAIURL
	}
	if cfg.Model == "" {
		cfg.Model = common.DefaultOpenAIModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = common.DefaultLLMTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}, log: logger}
}

// ExtractFields implements llm.FieldExtractor using text-only chat/completions in JSON mode.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (llm.OrderFields, []byte, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
		ctx = common.WithRequestID(ctx, rid)
	}
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"provider", "openai",
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
	)
	if strings.TrimSpace(req.Text) == "" {
		return llm.OrderFields{}, nil, fmt.Errorf("empty input text")
	}
	if c.cfg.APIKey == "" {
		return llm.OrderFields{}, nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt(req.Catalog)},
			{"role": "user", "content": llm.BuildUserPrompt(req) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(llm.BuildOrderJSONSchema(true))},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := llm.PostJSON(ctx, c.http, endpoint, body, map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
	}, c.log)
	if err != nil {
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			c.log.Error("llm.extract.provider_status",
				"req_id", rid, "status", statusErr.Status, "retryable", statusErr.Retryable(),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		} else {
			c.log.Error("llm.extract.http_error",
				"req_id", rid, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		}
		return llm.OrderFields{}, raw, fmt.Errorf("openai request: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.OrderFields{}, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.OrderFields{}, raw, fmt.Errorf("no choices in openai response")
	}

	out, cleaned, err := llm.DecodeOrderFields([]byte(cc.Choices[0].Message.Content), c.log)
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

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
