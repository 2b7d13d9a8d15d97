package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepverse/ai-interviewer/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindLatestByUser(userID uuid.UUID) (*models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	return nil
}

// FindLatestByUser implements ResumeRepository. The most recently inserted
// résumé is the current one.
func (r *resumeRepository) FindLatestByUser(userID uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}
