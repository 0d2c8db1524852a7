package repository

import (
	"github.com/cyfa-store/api/internal/models"

	"gorm.io/gorm"
)

// ContactMessageRepository persists contact form submissions.
type ContactMessageRepository interface {
	Create(msg *models.ContactMessage) error
	GetByID(id uint) (*models.ContactMessage, error)
	WithTx(tx *gorm.DB) *GormContactMessageRepository
}

type GormContactMessageRepository struct {
	db *gorm.DB
}

func NewContactMessageRepository(db *gorm.DB) *GormContactMessageRepository {
	return &GormContactMessageRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormContactMessageRepository) WithTx(tx *gorm.DB) *GormContactMessageRepository {
	if tx == nil {
		return r
	}
	return &GormContactMessageRepository{db: tx}
}

func (r *GormContactMessageRepository) Create(msg *models.ContactMessage) error {
	return r.db.Create(msg).Error
}

func (r *GormContactMessageRepository) GetByID(id uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := r.db.First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
