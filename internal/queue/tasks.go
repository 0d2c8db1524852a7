package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// TaskContactMessageNotify notifies the team of a new contact message.
	TaskContactMessageNotify = "contact:message:notify"
	// TaskNewsletterWelcome greets a new newsletter subscriber.
	TaskNewsletterWelcome = "newsletter:welcome"
)

// ContactMessageNotifyPayload carries the stored message id.
type ContactMessageNotifyPayload struct {
	MessageID uint `json:"message_id"`
}

// NewsletterWelcomePayload carries the subscriber email.
type NewsletterWelcomePayload struct {
	Email string `json:"email"`
}

// NewContactMessageNotifyTask builds the contact notification task.
func NewContactMessageNotifyTask(payload ContactMessageNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactMessageNotify, body), nil
}

// NewNewsletterWelcomeTask builds the newsletter welcome task.
func NewNewsletterWelcomeTask(payload NewsletterWelcomePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNewsletterWelcome, body), nil
}
