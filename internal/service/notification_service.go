package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cyfa-store/api/internal/logger"
	"github.com/cyfa-store/api/internal/models"
	"github.com/cyfa-store/api/internal/queue"
	"github.com/cyfa-store/api/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// NotificationService stores form submissions and hands notification work to
// the queue. Enqueue failures are logged, not surfaced; the submission is
// already persisted.
type NotificationService struct {
	contactRepo    repository.ContactMessageRepository
	newsletterRepo repository.NewsletterRepository
	queueClient    *queue.Client
}

// NewNotificationService creates the notification service.
func NewNotificationService(contactRepo repository.ContactMessageRepository, newsletterRepo repository.NewsletterRepository, queueClient *queue.Client) *NotificationService {
	return &NotificationService{
		contactRepo:    contactRepo,
		newsletterRepo: newsletterRepo,
		queueClient:    queueClient,
	}
}

// SubmitContact validates and stores a contact message.
func (s *NotificationService) SubmitContact(input ContactInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	message := strings.TrimSpace(input.Message)
	if name == "" || message == "" {
		return nil, fmt.Errorf("%w: name and message are required", ErrInvalidSubmission)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: email is invalid", ErrInvalidSubmission)
	}
	msg := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(input.Subject),
		Message: message,
	}
	if err := s.contactRepo.Create(msg); err != nil {
		return nil, err
	}
	if err := s.queueClient.EnqueueContactMessageNotify(queue.ContactMessageNotifyPayload{MessageID: msg.ID}); err != nil {
		logger.Warnw("contact notify enqueue failed", "message_id", msg.ID, "error", err)
	}
	return msg, nil
}

// SubscribeNewsletter records a newsletter sign-up. Duplicate emails are
// accepted silently so the form never leaks who is already subscribed.
func (s *NotificationService) SubscribeNewsletter(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: email is invalid", ErrInvalidSubmission)
	}
	created, err := s.newsletterRepo.Subscribe(email)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	if err := s.queueClient.EnqueueNewsletterWelcome(queue.NewsletterWelcomePayload{Email: email}); err != nil {
		logger.Warnw("newsletter welcome enqueue failed", "email", email, "error", err)
	}
	return nil
}
