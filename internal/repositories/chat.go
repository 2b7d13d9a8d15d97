package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepverse/ai-interviewer/internal/models"
)

type ChatRepository interface {
	Create(turn *models.ChatTurn) error
	ListByUser(userID uuid.UUID) ([]models.ChatTurn, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Create implements ChatRepository. Chat history is append-only.
func (r *chatRepository) Create(turn *models.ChatTurn) error {
	if err := r.db.Create(turn).Error; err != nil {
		return fmt.Errorf("failed to create chat turn: %w", err)
	}

	return nil
}

// ListByUser implements ChatRepository, oldest first.
func (r *chatRepository) ListByUser(userID uuid.UUID) ([]models.ChatTurn, error) {
	var turns []models.ChatTurn
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&turns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chat history: %w", err)
	}

	return turns, nil
}
