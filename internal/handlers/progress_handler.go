package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prepverse/ai-interviewer/internal/middleware"
	"prepverse/ai-interviewer/internal/models"
	"prepverse/ai-interviewer/internal/repositories"
)

type ProgressHandler struct {
	testRepo repositories.TestRepository
}

func NewProgressHandler(testRepo repositories.TestRepository) *ProgressHandler {
	return &ProgressHandler{
		testRepo: testRepo,
	}
}

// HandleGetProgress handles GET /api/progress/:username. A caller may only
// read their own progress; any other username is a 403 regardless of
// whether it exists.
func (h *ProgressHandler) HandleGetProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if user.Username != c.Params("username") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized access",
		})
	}

	tests, err := h.testRepo.ListByUser(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load progress",
		})
	}

	progress := make([]models.ProgressEntry, 0, len(tests))
	for _, test := range tests {
		topic := test.Topic
		if topic == "" {
			topic = "N/A"
		}
		level := test.Level
		if level == "" {
			level = "N/A"
		}

		progress = append(progress, models.ProgressEntry{
			ID:        test.ID.String(),
			Type:      string(test.TestType),
			Completed: true,
			Feedback:  fmt.Sprintf("Topic: %s, Level: %s", topic, level),
		})
	}

	return c.JSON(progress)
}

// HandleGetTestQuestions handles GET /api/test-questions/:test_id. The
// stored questions come back as stored: an array for interview tests, raw
// text for aptitude and coding tests. Another user's test id behaves like a
// missing one.
func (h *ProgressHandler) HandleGetTestQuestions(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test ID",
		})
	}

	test, err := h.testRepo.FindByIDAndUser(testID, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Test not found",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load test",
		})
	}

	questions := json.RawMessage(test.Questions)
	if len(questions) == 0 {
		questions = json.RawMessage("[]")
	}

	return c.JSON(fiber.Map{"questions": questions})
}

// HandleProtected handles GET /protected, an authenticated smoke route.
func (h *ProgressHandler) HandleProtected(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Hello %s! You are authorized.", user.Username),
	})
}
