package repositories

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"prepverse/ai-interviewer/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Resume{},
		&models.TestRecord{},
		&models.ChatTurn{},
	))

	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, NewUserRepository(db).Create(user))

	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := newTestUser(t, db, "alice@example.com")
	require.NotEqual(t, uuid.Nil, user.ID)

	byEmail, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestUserRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(newTestDB(t))

	_, err := repo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUserRepository(db)

	newTestUser(t, db, "dup@example.com")

	err := repo.Create(&models.User{
		Username:     "other",
		Email:        "dup@example.com",
		PasswordHash: "hash",
	})
	require.Error(t, err)
}

func TestResumeRepository_LatestWins(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewResumeRepository(db)
	user := newTestUser(t, db, "resume@example.com")

	old := &models.Resume{
		UserID:    user.ID,
		Payload:   models.JSON(`{"skills":["python"]}`),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(old))

	current := &models.Resume{
		UserID:  user.ID,
		Payload: models.JSON(`{"skills":["go"]}`),
	}
	require.NoError(t, repo.Create(current))

	latest, err := repo.FindLatestByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, current.ID, latest.ID)
	assert.JSONEq(t, `{"skills":["go"]}`, string(latest.Payload))
}

func TestResumeRepository_NotFoundForOtherUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewResumeRepository(db)
	user := newTestUser(t, db, "owner@example.com")

	require.NoError(t, repo.Create(&models.Resume{
		UserID:  user.ID,
		Payload: models.JSON(`"raw text"`),
	}))

	_, err := repo.FindLatestByUser(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTestRepository_OwnershipScope(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewTestRepository(db)
	owner := newTestUser(t, db, "owner@example.com")
	stranger := newTestUser(t, db, "stranger@example.com")

	record := &models.TestRecord{
		UserID:    owner.ID,
		TestType:  models.TestTypeInterview,
		Role:      "Backend Engineer",
		Questions: models.JSON(`["q1","q2"]`),
	}
	require.NoError(t, repo.Create(record))

	found, err := repo.FindByIDAndUser(record.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, found.ID)

	// Another user's id behaves as if the record does not exist.
	_, err = repo.FindByIDAndUser(record.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTestRepository_FindLatestInterview(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewTestRepository(db)
	user := newTestUser(t, db, "interview@example.com")

	older := &models.TestRecord{
		UserID:    user.ID,
		TestType:  models.TestTypeInterview,
		Role:      "Backend Engineer",
		Questions: models.JSON(`["old"]`),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(older))

	newer := &models.TestRecord{
		UserID:    user.ID,
		TestType:  models.TestTypeInterview,
		Role:      "Backend Engineer",
		Questions: models.JSON(`["new"]`),
	}
	require.NoError(t, repo.Create(newer))

	// A different role or type does not count.
	require.NoError(t, repo.Create(&models.TestRecord{
		UserID:   user.ID,
		TestType: models.TestTypeAptitude,
		Level:    "easy",
		Topic:    "Logic",
	}))

	latest, err := repo.FindLatestInterview(user.ID, "Backend Engineer")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)

	_, err = repo.FindLatestInterview(user.ID, "Frontend Engineer")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTestRepository_UpdateQuestionsAndAnswers(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewTestRepository(db)
	user := newTestUser(t, db, "update@example.com")

	record := &models.TestRecord{
		UserID:    user.ID,
		TestType:  models.TestTypeInterview,
		Role:      "Backend Engineer",
		Questions: models.JSON(`["q1"]`),
	}
	require.NoError(t, repo.Create(record))

	require.NoError(t, repo.UpdateQuestions(record.ID, models.JSON(`["q1","q2"]`)))
	require.NoError(t, repo.UpdateAnswers(record.ID, models.JSON(`["a1","a2"]`)))

	updated, err := repo.FindByIDAndUser(record.ID, user.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `["q1","q2"]`, string(updated.Questions))
	assert.JSONEq(t, `["a1","a2"]`, string(updated.Answers))

	assert.ErrorIs(t, repo.UpdateQuestions(uuid.New(), models.JSON(`[]`)), ErrNotFound)
}

func TestTestRepository_ListByUserNewestFirst(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewTestRepository(db)
	user := newTestUser(t, db, "list@example.com")

	for _, age := range []time.Duration{3 * time.Hour, 2 * time.Hour, time.Hour} {
		require.NoError(t, repo.Create(&models.TestRecord{
			UserID:    user.ID,
			TestType:  models.TestTypeAptitude,
			Topic:     "Logic",
			Level:     "easy",
			CreatedAt: time.Now().Add(-age),
		}))
	}

	tests, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, tests, 3)
	assert.True(t, tests[0].CreatedAt.After(tests[1].CreatedAt))
	assert.True(t, tests[1].CreatedAt.After(tests[2].CreatedAt))
}

func TestChatRepository_AppendOnlyHistory(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewChatRepository(db)
	user := newTestUser(t, db, "chat@example.com")

	first := &models.ChatTurn{
		UserID:      user.ID,
		UserMessage: "hi",
		BotReply:    "hello",
		CreatedAt:   time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(first))

	second := &models.ChatTurn{
		UserID:      user.ID,
		UserMessage: "how do I prepare?",
		BotReply:    "practice",
	}
	require.NoError(t, repo.Create(second))

	turns, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "hi", turns[0].UserMessage)
	assert.Equal(t, "practice", turns[1].BotReply)
}
