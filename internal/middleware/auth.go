package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"prepverse/ai-interviewer/internal/models"
	"prepverse/ai-interviewer/internal/repositories"
	"prepverse/ai-interviewer/internal/services"
)

// ContextUserKey is the locals key under which the authenticated user is
// stored for downstream handlers.
const ContextUserKey = "user"

// AuthRequired gates a route behind a bearer credential. It decodes the
// token, resolves the embedded user id against the user collection and
// stores the user in locals. Every failure path (missing header, malformed
// token, bad signature, expiry, unknown user) yields the same 401.
func AuthRequired(tokens services.TokenService, users repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return unauthorized(c)
		}

		userID, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return unauthorized(c)
		}

		user, err := users.FindByID(userID)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(ContextUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(ContextUserKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}
