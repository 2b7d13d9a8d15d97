package handlers

import (
	"github.com/gofiber/fiber/v2"

	"prepverse/ai-interviewer/internal/middleware"
	"prepverse/ai-interviewer/internal/models"
	"prepverse/ai-interviewer/internal/repositories"
	"prepverse/ai-interviewer/internal/services"
)

type ChatHandler struct {
	chatRepo repositories.ChatRepository
	gemini   services.GeminiService
}

func NewChatHandler(chatRepo repositories.ChatRepository, gemini services.GeminiService) *ChatHandler {
	return &ChatHandler{
		chatRepo: chatRepo,
		gemini:   gemini,
	}
}

// HandleChat handles POST /api/chat. Each message is a self-contained
// prompt; the turn is appended to the user's chat history.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	reply, err := h.gemini.GenerateText(c.Context(), req.Message)
	if err != nil {
		return c.JSON(fiber.Map{"error": err.Error()})
	}

	turn := &models.ChatTurn{
		UserID:      user.ID,
		UserMessage: req.Message,
		BotReply:    reply,
	}
	if err := h.chatRepo.Create(turn); err != nil {
		return c.JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"reply": reply})
}
