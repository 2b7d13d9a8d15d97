package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepverse/ai-interviewer/internal/models"
)

type TestRepository interface {
	Create(test *models.TestRecord) error
	FindByIDAndUser(id, userID uuid.UUID) (*models.TestRecord, error)
	FindLatestInterview(userID uuid.UUID, role string) (*models.TestRecord, error)
	ListByUser(userID uuid.UUID) ([]models.TestRecord, error)
	UpdateQuestions(id uuid.UUID, questions models.JSON) error
	UpdateAnswers(id uuid.UUID, answers models.JSON) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

// Create implements TestRepository.
func (r *testRepository) Create(test *models.TestRecord) error {
	if err := r.db.Create(test).Error; err != nil {
		return fmt.Errorf("failed to create test record: %w", err)
	}

	return nil
}

// FindByIDAndUser implements TestRepository. Records are scoped to their
// owner; another user's id behaves as if the record does not exist.
func (r *testRepository) FindByIDAndUser(id, userID uuid.UUID) (*models.TestRecord, error) {
	var test models.TestRecord
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find test record: %w", err)
	}

	return &test, nil
}

// FindLatestInterview implements TestRepository.
func (r *testRepository) FindLatestInterview(userID uuid.UUID, role string) (*models.TestRecord, error) {
	var test models.TestRecord
	err := r.db.
		Where("user_id = ? AND role = ? AND test_type = ?", userID, role, models.TestTypeInterview).
		Order("created_at DESC").
		First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find interview record: %w", err)
	}

	return &test, nil
}

// ListByUser implements TestRepository, newest first.
func (r *testRepository) ListByUser(userID uuid.UUID) ([]models.TestRecord, error) {
	var tests []models.TestRecord
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list test records: %w", err)
	}

	return tests, nil
}

// UpdateQuestions implements TestRepository.
func (r *testRepository) UpdateQuestions(id uuid.UUID, questions models.JSON) error {
	return r.updateFields(id, map[string]interface{}{"questions": questions})
}

// UpdateAnswers implements TestRepository.
func (r *testRepository) UpdateAnswers(id uuid.UUID, answers models.JSON) error {
	return r.updateFields(id, map[string]interface{}{"answers": answers})
}

func (r *testRepository) updateFields(id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.Model(&models.TestRecord{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update test record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
