// Deliver score responses to caller-supplied webhook URLs
// Fire-and-forget from the API's point of view: delivery retries in the
// background and failures are logged, never surfaced to the HTTP client

package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	maxRetries     = 3
	requestTimeout = 10 * time.Second
)

// Notifier POSTs JSON payloads to callback URLs with linear-backoff retries.
type Notifier struct {
	client *http.Client
	logger *zap.Logger
}

func New(logger *zap.Logger) *Notifier {
	return &Notifier{
		client: &http.Client{Timeout: requestTimeout},
		logger: logger,
	}
}

// Deliver POSTs payload to url, retrying up to three times with a growing
// pause between attempts.
func (n *Notifier) Deliver(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal callback payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = n.post(ctx, url, body)
		if lastErr == nil {
			n.logger.Info("📤 callback delivered", zap.String("url", url), zap.Int("attempt", attempt))
			return nil
		}

		n.logger.Warn("⚠️ callback attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)

		if attempt == maxRetries {
			break
		}

		select {
		case <-time.After(time.Duration(attempt) * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("callback to %s failed after %d attempts: %w", url, maxRetries, lastErr)
}

func (n *Notifier) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("callback endpoint returned %s", resp.Status)
	}
	return nil
}
