package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/manyinyire/Outleads-sub001/internal/config"
	"github.com/manyinyire/Outleads-sub001/internal/events"
	"github.com/manyinyire/Outleads-sub001/internal/resilience"
)

// NotificationService forwards domain events to the configured webhook and
// logs mail intents. Actual mail delivery goes through an external relay.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	notify     config.NotifyConfig
	smtp       config.SMTPConfig
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, notify config.NotifyConfig, smtp config.SMTPConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		notify:     notify,
		smtp:       smtp,
		client:     &http.Client{Timeout: 5 * time.Second},
		breaker:    resilience.NewCircuitBreaker("notify-webhook"),
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLeadCaptured, n.handleEvent)
	n.dispatcher.Subscribe(events.EventLeadsAssigned, n.handleEvent)
	n.dispatcher.Subscribe(events.EventDispositionChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventUserPending, n.handleUserEvent)
	n.dispatcher.Subscribe(events.EventUserApproved, n.handleUserEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("event", zap.String("type", string(event.Type)), zap.Any("payload", event.Payload))
	n.sendWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleUserEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("event", zap.String("type", string(event.Type)), zap.Any("payload", event.Payload))
	n.sendWebhook(ctx, event)
	n.sendEmailStub(event)
	return nil
}

// sendWebhook posts the event through the circuit breaker with bounded
// retries. Delivery failures are logged, never surfaced to the request.
func (n *NotificationService) sendWebhook(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.notify.WebhookURL) == "" {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("webhook payload marshal failed", zap.Error(err))
		return
	}

	_, err = n.breaker.Execute(func() (interface{}, error) {
		retryCfg := resilience.Config{MaxRetries: 2, InitialBackoff: 200 * time.Millisecond}
		return nil, resilience.RetryWithBackoff(ctx, retryCfg, func() error {
			return n.post(ctx, body)
		})
	})
	if err != nil {
		n.logger.Warn("webhook delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

func (n *NotificationService) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.notify.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (n *NotificationService) sendEmailStub(event events.Event) {
	if strings.TrimSpace(n.smtp.Host) == "" {
		return
	}
	n.logger.Debug("email notification queued",
		zap.String("from", n.smtp.From),
		zap.String("event_type", string(event.Type)))
}
