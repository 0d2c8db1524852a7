package worker

import (
	"context"
	"encoding/json"

	"github.com/cyfa-store/api/internal/logger"
	"github.com/cyfa-store/api/internal/provider"
	"github.com/cyfa-store/api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued notification tasks. Delivery here means logging
// the notification; an SMTP sender can hang off these handlers later.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register installs the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskContactMessageNotify, c.handleContactMessageNotify)
	mux.HandleFunc(queue.TaskNewsletterWelcome, c.handleNewsletterWelcome)
}

func (c *Consumer) handleContactMessageNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ContactMessageNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_contact_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.MessageID == 0 {
		logger.Debugw("worker_contact_notify_skip_invalid_payload", "message_id", payload.MessageID)
		return nil
	}
	msg, err := c.ContactRepo.GetByID(payload.MessageID)
	if err != nil {
		logger.Warnw("worker_contact_notify_fetch_failed", "message_id", payload.MessageID, "error", err)
		return err
	}
	logger.Infow("worker_contact_message_received",
		"message_id", msg.ID,
		"name", msg.Name,
		"email", msg.Email,
		"subject", msg.Subject,
	)
	return nil
}

func (c *Consumer) handleNewsletterWelcome(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.NewsletterWelcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_newsletter_welcome_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" {
		logger.Debugw("worker_newsletter_welcome_skip_empty_email")
		return nil
	}
	logger.Infow("worker_newsletter_subscriber_welcomed", "email", payload.Email)
	return nil
}
