package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// pushMessage is the gateway's payload shape (gotify-compatible).
type pushMessage struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// PushNotifier delivers alert notifications to an HTTP push gateway.
// Delivery is best effort; callers log failures and move on.
type PushNotifier struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewPushNotifier creates a notifier for the given gateway.
func NewPushNotifier(gatewayURL, token string, logger *zap.Logger) *PushNotifier {
	client := resty.New().
		SetBaseURL(gatewayURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Gotify-Key", token)

	return &PushNotifier{
		httpClient: client,
		logger:     logger,
	}
}

// Notify posts one notification. A non-2xx response counts as failure.
func (n *PushNotifier) Notify(ctx context.Context, title, content string) error {
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(pushMessage{Title: title, Message: content}).
		Post("/message")

	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode())
	}

	n.logger.Debug("Notification delivered",
		zap.String("title", title),
		zap.Int("status", resp.StatusCode()),
	)

	return nil
}

// NopNotifier swallows notifications. Used when no gateway is
// configured so deployments without push still run checks.
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(ctx context.Context, title, content string) error {
	return nil
}
