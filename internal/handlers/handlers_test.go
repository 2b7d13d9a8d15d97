package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"prepverse/ai-interviewer/internal/middleware"
	"prepverse/ai-interviewer/internal/models"
	"prepverse/ai-interviewer/internal/repositories"
	"prepverse/ai-interviewer/internal/services"
)

// stubGemini returns a canned reply or error instead of calling the real
// text-generation endpoint.
type stubGemini struct {
	reply string
	err   error
}

func (s *stubGemini) GenerateText(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

// stubExecutor avoids real code-execution calls in route tests.
type stubExecutor struct {
	result *services.ExecutionResult
	cases  []services.CaseResult
	score  int
	err    error
}

func (s *stubExecutor) Execute(_ context.Context, _, _, _ string) (*services.ExecutionResult, error) {
	return s.result, s.err
}

func (s *stubExecutor) RunTestCases(_ context.Context, _, _ string, _ []models.TestCase) ([]services.CaseResult, int) {
	return s.cases, s.score
}

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	tokens   services.TokenService
	users    repositories.UserRepository
	tests    repositories.TestRepository
	chats    repositories.ChatRepository
	resumes  repositories.ResumeRepository
	gemini   *stubGemini
	executor *stubExecutor
}

// newTestEnv wires the full route table against an in-memory database with
// stubbed external services, mirroring the production bootstrap.
func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		db:       db,
		tokens:   services.NewTokenService("test-secret", time.Hour),
		users:    repositories.NewUserRepository(db),
		tests:    repositories.NewTestRepository(db),
		chats:    repositories.NewChatRepository(db),
		resumes:  repositories.NewResumeRepository(db),
		gemini:   &stubGemini{},
		executor: &stubExecutor{},
	}

	prompts := services.NewPromptBuilder()
	storage := services.NewStorageService(t.TempDir())
	pdfParser := services.NewPDFParserService()
	extractor := services.NewResumeExtractor()

	authHandler := NewAuthHandler(env.users, env.tokens)
	resumeHandler := NewResumeHandler(env.resumes, storage, pdfParser, extractor, 1<<20)
	questionHandler := NewQuestionHandler(env.tests, env.gemini, prompts)
	feedbackHandler := NewFeedbackHandler(env.tests, env.gemini, prompts)
	codeHandler := NewCodeHandler(env.tests, env.executor)
	chatHandler := NewChatHandler(env.chats, env.gemini)
	progressHandler := NewProgressHandler(env.tests)

	app := fiber.New()
	auth := middleware.AuthRequired(env.tokens, env.users)

	app.Post("/signup", authHandler.HandleSignup)
	app.Post("/login", authHandler.HandleLogin)
	app.Post("/parse-resume", auth, resumeHandler.HandleParseResume)
	app.Post("/save-resume", auth, resumeHandler.HandleSaveResume)
	app.Get("/get-resume", auth, resumeHandler.HandleGetResume)
	app.Post("/generate-questions", auth, questionHandler.HandleGenerateQuestions)
	app.Post("/follow-up", auth, questionHandler.HandleFollowUp)
	app.Post("/generate-aptitude", auth, questionHandler.HandleGenerateAptitude)
	app.Post("/generate-coding", auth, questionHandler.HandleGenerateCoding)
	app.Post("/generate-feedback", auth, feedbackHandler.HandleGenerateFeedback)
	app.Post("/run-code", auth, codeHandler.HandleRunCode)
	app.Post("/submit-code", auth, codeHandler.HandleSubmitCode)
	app.Post("/api/chat", auth, chatHandler.HandleChat)
	app.Get("/api/progress/:username", auth, progressHandler.HandleGetProgress)
	app.Get("/api/test-questions/:test_id", auth, progressHandler.HandleGetTestQuestions)
	app.Get("/protected", auth, progressHandler.HandleProtected)

	env.app = app
	return env
}

// signupUser registers a user directly and returns it with a valid token.
func (env *testEnv) signupUser(t *testing.T, username, email string) (*models.User, string) {
	t.Helper()

	hash, err := services.HashPassword("s3cret-pass")
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, env.users.Create(user))

	token, err := env.tokens.Generate(user.ID)
	require.NoError(t, err)

	return user, token
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func numberedQuestions(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d. Question about area %d?\n", i, i)
	}
	return b.String()
}
