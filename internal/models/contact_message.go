package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage is a contact-form submission. The storefront does no real
// processing on these beyond recording them and notifying staff.
type ContactMessage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null;index" json:"email"`
	Subject   string         `json:"subject"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
