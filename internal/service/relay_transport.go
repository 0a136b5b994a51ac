package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
)

// ErrRelayNotConfigured is returned by every send when no relay URL is set.
var ErrRelayNotConfigured = errors.New("delivery relay url is not configured")

type relayRequest struct {
	Platform      string    `json:"platform"`
	PostID        string    `json:"post_id"`
	Content       string    `json:"content"`
	MediaRefs     []string  `json:"media_refs,omitempty"`
	Hashtags      []string  `json:"hashtags,omitempty"`
	ScheduledTime time.Time `json:"scheduled_time"`
}

type relayResponse struct {
	Success        bool   `json:"success"`
	ExternalPostID string `json:"external_post_id"`
	Error          string `json:"error"`
}

// RelayTransport hands posts to a delivery relay that owns the platform API
// clients.
type RelayTransport struct {
	url    string
	client *http.Client
}

func NewRelayTransport(url string, timeout time.Duration) *RelayTransport {
	return &RelayTransport{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the transport has somewhere to send to.
func (t *RelayTransport) Configured() bool {
	return t.url != ""
}

func (t *RelayTransport) Send(ctx context.Context, platformID string, post *models.Post) (SendResult, error) {
	if !t.Configured() {
		return SendResult{}, ErrRelayNotConfigured
	}

	body, err := json.Marshal(relayRequest{
		Platform:      platformID,
		PostID:        post.ID,
		Content:       post.Content,
		MediaRefs:     post.MediaRefs,
		Hashtags:      post.Hashtags,
		ScheduledTime: post.ScheduledTime,
	})
	if err != nil {
		return SendResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return SendResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return SendResult{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return SendResult{}, fmt.Errorf("relay returned %d: %s", resp.StatusCode, bytes.TrimSpace(bodyBytes))
	}

	var result relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return SendResult{}, fmt.Errorf("failed to decode relay response: %w", err)
	}

	return SendResult{
		Success:        result.Success,
		ExternalPostID: result.ExternalPostID,
		ErrorDetail:    result.Error,
	}, nil
}
