// Package notify posts a fire-and-forget HTTP notification for each
// newly matched track. Failures are logged, never retried; retry
// policy belongs to the receiving collaborator.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/llehouerou/wantlist/internal/errmsg"
	"github.com/llehouerou/wantlist/internal/match"
)

const requestTimeout = 10 * time.Second

// Client posts track-found notifications to a configured endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a notification client. Returns nil when url is empty,
// which disables notifications.
func New(url string, log *slog.Logger) *Client {
	if url == "" {
		return nil
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log,
	}
}

type trackFoundPayload struct {
	Artist string  `json:"artist"`
	Title  string  `json:"title"`
	Path   string  `json:"path"`
	Score  float64 `json:"score"`
}

// TrackFound notifies about one newly matched track without blocking
// the reconciliation pass.
func (c *Client) TrackFound(rec match.Record) {
	payload := trackFoundPayload{
		Artist: rec.Wanted.Artist,
		Title:  rec.Wanted.Title,
		Path:   rec.Library.Path,
		Score:  rec.Score,
	}
	go func() {
		if err := c.post(payload); err != nil {
			c.log.Warn(errmsg.FormatWith(errmsg.OpNotify, rec.Wanted.Raw, err))
		}
	}()
}

func (c *Client) post(payload trackFoundPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return nil
}
