package repository

import (
	"errors"
	"strings"

	"github.com/cyfa-store/api/internal/models"

	"gorm.io/gorm"
)

// NewsletterRepository persists newsletter sign-ups. Emails are unique;
// Subscribe reports whether the row is new so callers can skip duplicate
// notifications.
type NewsletterRepository interface {
	Subscribe(email string) (created bool, err error)
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
	WithTx(tx *gorm.DB) *GormNewsletterRepository
}

type GormNewsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormNewsletterRepository) WithTx(tx *gorm.DB) *GormNewsletterRepository {
	if tx == nil {
		return r
	}
	return &GormNewsletterRepository{db: tx}
}

func (r *GormNewsletterRepository) Subscribe(email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := r.GetByEmail(email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := r.db.Create(&models.NewsletterSubscriber{Email: email}).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	err := r.db.Where("email = ?", email).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
