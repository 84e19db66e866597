package middleware

import (
	"log"
	"strings"

	"github.com/ryu-zaki/learning-manangement-system/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userID"

// AuthMiddleware is the single authorization checkpoint. It extracts the
// bearer credential, verifies it, and stores the authenticated user id in
// the request locals; every handler behind it trusts that id and performs
// no further identity checks.
func AuthMiddleware(codec *utils.TokenCodec, logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			logger.Printf("auth rejected: %v", utils.ErrTokenMissing)
			return utils.Unauthorized(c)
		}

		userID, err := codec.Verify(token)
		if err != nil {
			logger.Printf("auth rejected: %v", err)
			return utils.Unauthorized(c)
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// bearerToken pulls the credential out of "Bearer <token>". The scheme is
// case-sensitive with a single space separator.
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.ContainsRune(token, ' ') {
		return "", false
	}
	return token, true
}

// UserID returns the authenticated user id set by AuthMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDKey).(uint)
	return id
}
