package middleware

import (
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AccessDeniedMessage is the static denial shown to non-admin members.
const AccessDeniedMessage = "Access Denied"

// RequireAdmin lets through members the policy accepts. Everyone else gets a
// static denial with a link home; denials are not logged.
func RequireAdmin(policy services.AccessPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member, ok := CurrentMember(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		if !policy.IsAdmin(member) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": AccessDeniedMessage,
				"detail":  "You don't have permission to access the admin panel.",
				"home":    "/",
			})
		}
		return c.Next()
	}
}
