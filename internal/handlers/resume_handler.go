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

type ResumeHandler struct {
	resumeRepo  repositories.ResumeRepository
	storage     services.StorageService
	pdfParser   services.PDFParserService
	extractor   *services.ResumeExtractor
	maxFileSize int64
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storage services.StorageService,
	pdfParser services.PDFParserService,
	extractor *services.ResumeExtractor,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:  resumeRepo,
		storage:     storage,
		pdfParser:   pdfParser,
		extractor:   extractor,
		maxFileSize: maxFileSize,
	}
}

// HandleParseResume handles POST /parse-resume. The uploaded PDF is archived
// to the uploads directory, converted to text and run through the extraction
// heuristics.
func (h *ResumeHandler) HandleParseResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file provided",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume file too large",
		})
	}

	filename, filePath, err := h.storage.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to save resume file",
		})
	}

	text, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read resume PDF",
		})
	}

	return c.JSON(h.extractor.Extract(text))
}

// HandleSaveResume handles POST /save-resume. A JSON-encoded string payload
// and a structured payload both normalize to one stored JSON document.
func (h *ResumeHandler) HandleSaveResume(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.SaveResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	payload, err := normalizeResumePayload(req.Resume)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume text is required",
		})
	}

	resume := &models.Resume{
		UserID:  user.ID,
		Payload: payload,
	}

	if err := h.resumeRepo.Create(resume); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save resume",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Resume saved successfully",
	})
}

// HandleGetResume handles GET /get-resume. It returns the most recently
// saved résumé, or an empty document when none exists.
func (h *ResumeHandler) HandleGetResume(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	resume, err := h.resumeRepo.FindLatestByUser(user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(fiber.Map{"resume": ""})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"resume": json.RawMessage(resume.Payload),
	})
}

// normalizeResumePayload resolves the two caller behaviors the API
// tolerates: a structured object, or that same object double-encoded as a
// JSON string. Both are stored as the structured form.
func normalizeResumePayload(raw json.RawMessage) (models.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.New("resume payload is empty")
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return nil, errors.New("resume payload is empty")
		}
		if json.Valid([]byte(asString)) {
			return models.JSON(asString), nil
		}
		// A plain-text résumé string stays a JSON string.
		return models.JSON(raw), nil
	}

	return models.JSON(raw), nil
}
