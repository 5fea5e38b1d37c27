package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	userIDHeader   = "X-User-ID"
	userRoleHeader = "X-User-Role"

	localUserID   = "userID"
	localUserRole = "userRole"

	roleAdmin = "admin"
)

// RequireUser resolves the caller identity supplied by the upstream identity
// service via trusted headers. Requests without a valid user ID are rejected.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := uuid.Parse(c.Get(userIDHeader))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or invalid user identity",
			})
		}

		c.Locals(localUserID, userID)
		c.Locals(localUserRole, c.Get(userRoleHeader))
		return c.Next()
	}
}

// RequireAdmin gates administrator-only operations (retraining, dataset
// upload, dashboards). Must run after RequireUser.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(localUserRole).(string); role != roleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Administrator access required",
			})
		}
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	userID, _ := c.Locals(localUserID).(uuid.UUID)
	return userID
}
