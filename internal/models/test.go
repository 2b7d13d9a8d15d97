package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestType string

const (
	TestTypeInterview      TestType = "interview"
	TestTypeAptitude       TestType = "aptitude"
	TestTypeCodingProblems TestType = "coding-problems"
	TestTypeCoding         TestType = "coding"
)

// TestRecord is one round of generated questions for a user, later mutated
// with follow-ups, answers or submission results. Questions holds either a
// JSON array (interview) or a JSON string of raw model text (aptitude,
// coding-problems), matching what the route stored.
type TestRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	TestType  TestType  `gorm:"type:text;not null" json:"test_type"`
	Role      string    `gorm:"type:text" json:"role,omitempty"`
	Level     string    `gorm:"type:text" json:"level,omitempty"`
	Topic     string    `gorm:"type:text" json:"topic,omitempty"`
	Questions JSON      `gorm:"type:jsonb" json:"questions,omitempty"`
	Answers   JSON      `gorm:"type:jsonb" json:"answers,omitempty"`
	Language  string    `gorm:"type:text" json:"language,omitempty"`
	Code      string    `gorm:"type:text" json:"code,omitempty"`
	Results   JSON      `gorm:"type:jsonb" json:"results,omitempty"`
	Score     *int      `json:"score,omitempty"`
	Total     *int      `json:"total,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *TestRecord) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (TestRecord) TableName() string {
	return "tests"
}

type ChatTurn struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	UserMessage string    `gorm:"type:text" json:"user_message"`
	BotReply    string    `gorm:"type:text" json:"bot_reply"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ct *ChatTurn) BeforeCreate(tx *gorm.DB) error {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return nil
}

func (ChatTurn) TableName() string {
	return "chat_history"
}
