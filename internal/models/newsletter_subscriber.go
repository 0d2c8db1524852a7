package models

import (
	"time"

	"gorm.io/gorm"
)

// NewsletterSubscriber is a newsletter signup. Email is unique; re-subscribing
// is a no-op rather than an error.
type NewsletterSubscriber struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
