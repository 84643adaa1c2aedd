package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/embermedia/creatorsite/pkg/logging"
	"github.com/embermedia/creatorsite/pkg/telemetry"
)

// envelope is the wire envelope the aggregation endpoint speaks
type envelope struct {
	Success bool     `json:"success"`
	Data    *Payload `json:"data"`
	Error   string   `json:"error"`
}

// Client fetches the aggregated payload from a remote dashboard
// endpoint over HTTP
type Client struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a new dashboard endpoint client
func NewClient(url string) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logging.GetLogger().With(zap.String("component", "dashboard-client")),
	}
}

// Fetch implements Fetcher by calling the aggregation endpoint
func (c *Client) Fetch(ctx context.Context) (*Payload, error) {
	ctx, span := telemetry.StartSpan(ctx, "dashboard.fetch")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dashboard request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard response: %w", err)
	}

	if !env.Success || env.Data == nil {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("dashboard endpoint error: %s", msg)
	}

	return env.Data, nil
}
