package handlers

import (
	"github.com/gofiber/fiber/v2"

	"clarivue/fitscore/internal/models"
)

// requestID reads the id set by the requestid middleware.
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func envelope(c *fiber.Ctx, message string) models.Envelope {
	return models.Envelope{
		RequestID: requestID(c),
		Message:   message,
	}
}
