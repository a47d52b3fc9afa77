package middleware

import (
	"Backend-Retreat-Survey/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const SessionIDKey = "sessionId"

// RequireSessionID rejects requests whose :id is not a UUID and stores the
// normalized id in Locals.
func RequireSessionID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid session id")
	}
	c.Locals(SessionIDKey, id.String())
	return c.Next()
}

// SessionID returns the id stored by RequireSessionID.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionIDKey).(string)
	return id
}
