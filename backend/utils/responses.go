package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the error shape every endpoint returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends a JSON error response.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// BadRequest sends a 400 Bad Request.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 with a generic message. Callers log the real
// reason; it is never echoed to the client.
func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

// NotFound sends a 404 Not Found.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 Conflict.
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// Internal sends a 500 with a generic message.
func Internal(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
