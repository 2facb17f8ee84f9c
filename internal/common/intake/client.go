package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	commonhttp "assessment-workers/internal/common/http"
)

// Payload is the JSON body accepted by the remote lead-intake endpoint.
// Repeated identical submissions are treated as independent events; the
// endpoint defines no idempotency key.
type Payload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ScorerRating  string `json:"scorer_rating,omitempty"`
	ScorerScore   string `json:"scorer_score,omitempty"`
	ScorerContext string `json:"scorer_context,omitempty"`
}

var ErrTimeout = errors.New("intake request timed out")

// Client submits lead payloads to the remote intake endpoint. The endpoint
// returns a binary accept/reject signal: 2xx accepts, everything else rejects.
type Client struct {
	endpointURL string
	httpClient  *commonhttp.Client
}

func NewClient(endpointURL string, timeout time.Duration) *Client {
	return &Client{
		endpointURL: endpointURL,
		httpClient:  commonhttp.NewClient(timeout),
	}
}

// Submit posts the payload and returns nil only on an accepting status.
// It never retries; callers decide what a rejection means for the user.
func (c *Client) Submit(ctx context.Context, payload *Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal intake payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create intake request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return fmt.Errorf("intake request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("intake rejected submission (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
