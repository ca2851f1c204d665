package middleware

import (
	"strings"

	"tokoadmin/internal/models"
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

const memberKey = "member"

// AuthRequired is a Fiber middleware to check for a valid JWT token. The
// member profile carried by the token is stored for later handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(memberKey, services.MemberFromClaims(claims))
		return c.Next()
	}
}

// CurrentMember returns the member stored by AuthRequired.
func CurrentMember(c *fiber.Ctx) (*models.Member, bool) {
	m, ok := c.Locals(memberKey).(*models.Member)
	return m, ok && m != nil
}
