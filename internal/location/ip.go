package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// IPLocator asks an ip-api.com compatible endpoint where the caller's
// public IP is. Coarse, but it needs no device permission.
type IPLocator struct {
	endpoint string
	http     *http.Client
	log      *slog.Logger
}

// NewIPLocator bounds every lookup by timeout (10s when unset).
func NewIPLocator(endpoint string, timeout time.Duration, logger *slog.Logger) *IPLocator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IPLocator{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		log:      logger,
	}
}

func (l *IPLocator) Locate(ctx context.Context) (Coordinates, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		l.log.Error("location.ip.send_error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return Coordinates{}, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			l.log.Warn("location.ip.response_body_close_error", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode/100 != 2 {
		return Coordinates{}, fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}

	var body struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Coordinates{}, fmt.Errorf("decode response: %w", err)
	}
	if body.Status != "" && body.Status != "success" {
		return Coordinates{}, fmt.Errorf("lookup failed: %s", body.Message)
	}
	p := Coordinates{Latitude: body.Lat, Longitude: body.Lon}
	if !p.Valid() || (p.Latitude == 0 && p.Longitude == 0) {
		return Coordinates{}, fmt.Errorf("no coordinates in response")
	}

	l.log.Info("location.ip.ok", "elapsed_ms", time.Since(start).Milliseconds())
	return p, nil
}
