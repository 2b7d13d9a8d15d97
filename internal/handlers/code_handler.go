package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"prepverse/ai-interviewer/internal/middleware"
	"prepverse/ai-interviewer/internal/models"
	"prepverse/ai-interviewer/internal/repositories"
	"prepverse/ai-interviewer/internal/services"
)

type CodeHandler struct {
	testRepo repositories.TestRepository
	executor services.CodeExecutionService
}

func NewCodeHandler(testRepo repositories.TestRepository, executor services.CodeExecutionService) *CodeHandler {
	return &CodeHandler{
		testRepo: testRepo,
		executor: executor,
	}
}

// HandleRunCode handles POST /run-code: a single execution against the
// provided stdin, nothing persisted.
func (h *CodeHandler) HandleRunCode(c *fiber.Ctx) error {
	var req models.RunCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Language == "" {
		req.Language = "python"
	}

	result, err := h.executor.Execute(c.Context(), req.Language, req.Code, req.Input)
	if err != nil {
		return c.JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// HandleSubmitCode handles POST /submit-code: every declared test case runs
// independently, the score counts passed cases, and the submission is stored
// as a coding test record.
func (h *CodeHandler) HandleSubmitCode(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.SubmitCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Language == "" {
		req.Language = "python"
	}

	results, score := h.executor.RunTestCases(c.Context(), req.Language, req.Code, req.TestCases)
	total := len(req.TestCases)

	resultsJSON, _ := json.Marshal(results)
	record := &models.TestRecord{
		UserID:   user.ID,
		TestType: models.TestTypeCoding,
		Language: req.Language,
		Code:     req.Code,
		Results:  resultsJSON,
		Score:    &score,
		Total:    &total,
	}
	if err := h.testRepo.Create(record); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save submission",
		})
	}

	return c.JSON(fiber.Map{
		"results": results,
		"score":   score,
		"total":   total,
	})
}
