package service

import (
	"errors"
	"testing"

	"github.com/cyfa-store/api/internal/models"
	"github.com/cyfa-store/api/internal/queue"
	"github.com/cyfa-store/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupNotificationServiceTest(t *testing.T) *NotificationService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ContactMessage{}, &models.NewsletterSubscriber{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.ContactMessage{}).Error; err != nil {
		t.Fatalf("reset messages failed: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.NewsletterSubscriber{}).Error; err != nil {
		t.Fatalf("reset subscribers failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	return NewNotificationService(
		repository.NewContactMessageRepository(db),
		repository.NewNewsletterRepository(db),
		queueClient,
	)
}

func TestSubmitContactStoresMessage(t *testing.T) {
	svc := setupNotificationServiceTest(t)

	msg, err := svc.SubmitContact(ContactInput{
		Name:    " Adaeze ",
		Email:   "Adaeze@Example.com",
		Subject: "Order question",
		Message: "Where is my scarf?",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if msg.ID == 0 {
		t.Fatalf("expected stored message id")
	}
	if msg.Name != "Adaeze" || msg.Email != "adaeze@example.com" {
		t.Fatalf("expected trimmed and lowercased fields, got %+v", msg)
	}
}

func TestSubmitContactRejectsBadEmail(t *testing.T) {
	svc := setupNotificationServiceTest(t)
	_, err := svc.SubmitContact(ContactInput{Name: "A", Email: "not-an-email", Message: "hi"})
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestSubscribeNewsletterIgnoresDuplicates(t *testing.T) {
	svc := setupNotificationServiceTest(t)

	if err := svc.SubscribeNewsletter("vip@example.com"); err != nil {
		t.Fatalf("first subscribe failed: %v", err)
	}
	if err := svc.SubscribeNewsletter("VIP@example.com"); err != nil {
		t.Fatalf("duplicate subscribe should be silent, got %v", err)
	}
	if err := svc.SubscribeNewsletter("nope"); !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
}
