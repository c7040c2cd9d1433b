package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/sim-order-desk/constants"
)

// Config holds all application configuration
type Config struct {
	Merchant MerchantConfig
	Order    OrderConfig
	QR       QRConfig
	LLM      LLMConfig
	Location LocationConfig
}

// MerchantConfig identifies the UPI payee.
type MerchantConfig struct {
	UPIID string
	Name  string
}

// OrderConfig holds order-level constants and the message recipient.
type OrderConfig struct {
	DeliveryCharge int
	Recipient      string
}

// QRConfig points at the external QR rendering service.
type QRConfig struct {
	Endpoint string
	Size     int
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Provider     string // gemini | openai
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIURL    string
	Temperature  float32
	Timeout      time.Duration
}

// LocationConfig selects the geolocation source. When Lat/Lon are set a
// static locator is used; otherwise the IP endpoint is queried.
type LocationConfig struct {
	Lat      string
	Lon      string
	Endpoint string
	Timeout  time.Duration
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultQREndpoint       = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultQRSize           = 250
	DefaultLocationEndpoint = "http://ip-api.com/json/"

	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultOpenAIURL   = "https://api.openai.com/v1"
	DefaultLLMTimeout  = 45 * time.Second
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Merchant: MerchantConfig{
			UPIID: getEnv("UPI_ID", ""),
			Name:  getEnv("MERCHANT_NAME", "SIM Store"),
		},
		Order: OrderConfig{
			DeliveryCharge: getEnvAsInt("DELIVERY_CHARGE", constants.DeliveryCharge),
			Recipient:      getEnv("ORDER_RECIPIENT", ""),
		},
		QR: QRConfig{
			Endpoint: getEnv("QR_ENDPOINT", DefaultQREndpoint),
			Size:     getEnvAsInt("QR_SIZE", DefaultQRSize),
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
			GeminiAPIKey: firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
			GeminiModel:  getEnv("GEMINI_MODEL", DefaultGeminiModel),
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:  getEnv("OPENAI_MODEL", DefaultOpenAIModel),
			OpenAIURL:    getEnv("OPENAI_BASE_URL", DefaultOpenAIURL),
			Temperature:  getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:      getEnvAsDuration("LLM_TIMEOUT", DefaultLLMTimeout),
		},
		Location: LocationConfig{
			Lat:      getEnv("LOCATION_LAT", ""),
			Lon:      getEnv("LOCATION_LON", ""),
			Endpoint: getEnv("LOCATION_ENDPOINT", DefaultLocationEndpoint),
			Timeout:  getEnvAsDuration("LOCATION_TIMEOUT", 10*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the settings every driver needs. Payment and extraction
// credentials are optional: without them the UPI link or AI prefill is skipped.
func (c *Config) Validate() error {
	if c.Order.DeliveryCharge <= 0 {
		return NewAppError(CodeConfig, "DELIVERY_CHARGE must be positive", ErrInvalidInput)
	}
	if c.QR.Size <= 0 {
		return NewAppError(CodeConfig, "QR_SIZE must be positive", ErrInvalidInput)
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return NewAppError(CodeConfig, "LLM_PROVIDER must be gemini or openai", ErrInvalidInput)
	}
	if (c.Location.Lat == "") != (c.Location.Lon == "") {
		return NewAppError(CodeConfig, "LOCATION_LAT and LOCATION_LON must be set together", ErrInvalidInput)
	}
	return nil
}

// ExtractionConfigured reports whether the selected provider has credentials.
func (c *Config) ExtractionConfigured() bool {
	if c.LLM.Provider == ProviderOpenAI {
		return c.LLM.OpenAIAPIKey != ""
	}
	return c.LLM.GeminiAPIKey != ""
}
