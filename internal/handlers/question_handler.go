package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"prepverse/ai-interviewer/internal/middleware"
	"prepverse/ai-interviewer/internal/models"
	"prepverse/ai-interviewer/internal/repositories"
	"prepverse/ai-interviewer/internal/services"
)

type QuestionHandler struct {
	testRepo repositories.TestRepository
	gemini   services.GeminiService
	prompts  *services.PromptBuilder
}

func NewQuestionHandler(
	testRepo repositories.TestRepository,
	gemini services.GeminiService,
	prompts *services.PromptBuilder,
) *QuestionHandler {
	return &QuestionHandler{
		testRepo: testRepo,
		gemini:   gemini,
		prompts:  prompts,
	}
}

// HandleGenerateQuestions handles POST /generate-questions. The response
// always opens with the fixed first question and carries 16-21 questions in
// total. Upstream failures come back as an error field beside an empty list,
// keeping the response shape uniform.
func (h *QuestionHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	prompt := h.prompts.BuildInterviewQuestionsPrompt(req.Parsed, req.Role)

	output, err := h.gemini.GenerateText(c.Context(), prompt)
	if err != nil {
		return c.JSON(fiber.Map{"questions": []string{}, "error": err.Error()})
	}

	questions := services.NormalizeInterviewQuestions(services.SplitQuestions(output))

	questionsJSON, _ := json.Marshal(questions)
	record := &models.TestRecord{
		UserID:    user.ID,
		Role:      req.Role,
		TestType:  models.TestTypeInterview,
		Questions: questionsJSON,
	}
	if err := h.testRepo.Create(record); err != nil {
		return c.JSON(fiber.Map{"questions": []string{}, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"questions": questions})
}

// HandleFollowUp handles POST /follow-up. Follow-ups append to the latest
// interview record for the same user and role, or start a fresh one.
func (h *QuestionHandler) HandleFollowUp(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.FollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Answer == "" || req.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Both 'answer' and 'role' are required",
		})
	}

	prompt := h.prompts.BuildFollowUpPrompt(req.Answer, req.Role)

	output, err := h.gemini.GenerateText(c.Context(), prompt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"questions": []string{},
			"error":     "Failed to generate follow-up questions: " + err.Error(),
		})
	}

	questions := services.NormalizeFollowUpQuestions(services.SplitQuestions(output))

	if err := h.appendFollowUps(user, req.Role, questions); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"questions": []string{},
			"error":     "Failed to generate follow-up questions: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{"questions": questions})
}

func (h *QuestionHandler) appendFollowUps(user *models.User, role string, questions []string) error {
	existing, err := h.testRepo.FindLatestInterview(user.ID, role)
	if errors.Is(err, repositories.ErrNotFound) {
		questionsJSON, _ := json.Marshal(questions)
		return h.testRepo.Create(&models.TestRecord{
			UserID:    user.ID,
			Role:      role,
			TestType:  models.TestTypeInterview,
			Questions: questionsJSON,
		})
	}
	if err != nil {
		return err
	}

	var stored []string
	if len(existing.Questions) > 0 {
		// Interview questions are stored as a JSON array; anything else is
		// treated as empty rather than failing the append.
		_ = json.Unmarshal(existing.Questions, &stored)
	}

	updatedJSON, _ := json.Marshal(append(stored, questions...))
	return h.testRepo.UpdateQuestions(existing.ID, updatedJSON)
}

// HandleGenerateAptitude handles POST /generate-aptitude. The raw model text
// is stored and returned unprocessed; the consuming UI parses the question
// structure.
func (h *QuestionHandler) HandleGenerateAptitude(c *fiber.Ctx) error {
	return h.generateRawTest(c, models.TestTypeAptitude, h.prompts.BuildAptitudePrompt)
}

// HandleGenerateCoding handles POST /generate-coding.
func (h *QuestionHandler) HandleGenerateCoding(c *fiber.Ctx) error {
	return h.generateRawTest(c, models.TestTypeCodingProblems, h.prompts.BuildCodingPrompt)
}

func (h *QuestionHandler) generateRawTest(
	c *fiber.Ctx,
	testType models.TestType,
	buildPrompt func(level, topic string) string,
) error {
	user := middleware.CurrentUser(c)

	var req models.GenerateTestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Level == "" {
		req.Level = "easy"
	}
	if req.Topic == "" {
		req.Topic = "Random"
	}

	output, err := h.gemini.GenerateText(c.Context(), buildPrompt(req.Level, req.Topic))
	if err != nil {
		return c.JSON(fiber.Map{"questions": []string{}, "error": err.Error()})
	}

	questionsJSON, _ := json.Marshal(output)
	record := &models.TestRecord{
		UserID:    user.ID,
		TestType:  testType,
		Level:     req.Level,
		Topic:     req.Topic,
		Questions: questionsJSON,
	}
	if err := h.testRepo.Create(record); err != nil {
		return c.JSON(fiber.Map{"questions": []string{}, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"questions": output})
}
