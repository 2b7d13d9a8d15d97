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

type FeedbackHandler struct {
	testRepo repositories.TestRepository
	gemini   services.GeminiService
	prompts  *services.PromptBuilder
}

func NewFeedbackHandler(
	testRepo repositories.TestRepository,
	gemini services.GeminiService,
	prompts *services.PromptBuilder,
) *FeedbackHandler {
	return &FeedbackHandler{
		testRepo: testRepo,
		gemini:   gemini,
		prompts:  prompts,
	}
}

// HandleGenerateFeedback handles POST /generate-feedback. Scoring is
// delegated to the model; the numeric score and the pass/fail verdict are
// recovered from its free text, falling back to 0 and "rejected" when the
// expected pattern is absent.
func (h *FeedbackHandler) HandleGenerateFeedback(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	testType := models.TestType(req.TestType)
	switch testType {
	case models.TestTypeAptitude, models.TestTypeCoding, models.TestTypeInterview:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test type",
		})
	}

	// Attach the raw answers to the candidate's latest interview record
	// before asking for feedback, so the attempt is never lost to an
	// upstream failure.
	h.saveAnswers(user, req)

	prompt := h.prompts.BuildFeedbackPrompt(testType, req.Questions, req.Answers, req.Role)

	output, err := h.gemini.GenerateText(c.Context(), prompt)
	if err != nil {
		return c.JSON(fiber.Map{"feedback": "", "error": err.Error()})
	}

	switch testType {
	case models.TestTypeAptitude:
		score, total := services.ParseAptitudeScore(output)
		return c.JSON(fiber.Map{"score": score, "total": total, "feedback": output})

	case models.TestTypeCoding:
		return c.JSON(fiber.Map{"result": services.ParseCodingResult(output), "feedback": output})

	default:
		return c.JSON(fiber.Map{"feedback": output})
	}
}

func (h *FeedbackHandler) saveAnswers(user *models.User, req models.FeedbackRequest) {
	answersJSON, _ := json.Marshal(req.Answers)

	existing, err := h.testRepo.FindLatestInterview(user.ID, req.Role)
	if errors.Is(err, repositories.ErrNotFound) {
		questionsJSON, _ := json.Marshal(req.Questions)
		h.testRepo.Create(&models.TestRecord{
			UserID:    user.ID,
			Role:      req.Role,
			TestType:  models.TestTypeInterview,
			Questions: questionsJSON,
			Answers:   answersJSON,
		})
		return
	}
	if err != nil {
		return
	}

	h.testRepo.UpdateAnswers(existing.ID, answersJSON)
}
