package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ryu-zaki/learning-manangement-system/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(codec *utils.TokenCodec) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(codec, utils.InitLogger()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": UserID(c)})
	})
	return app
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	codec := utils.NewTokenCodec("test-secret", time.Hour)
	app := newAuthTestApp(codec)

	token, err := codec.Issue(42)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(42), body["user_id"])
}

func TestAuthMiddlewareRejections(t *testing.T) {
	codec := utils.NewTokenCodec("test-secret", time.Hour)
	app := newAuthTestApp(codec)

	token, err := codec.Issue(42)
	require.NoError(t, err)

	expiredCodec := utils.NewTokenCodec("test-secret", -time.Minute)
	expired, err := expiredCodec.Issue(42)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic " + token},
		{"lowercase scheme", "bearer " + token},
		{"no space", "Bearer" + token},
		{"double space", "Bearer  " + token},
		{"bare token", token},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			// The rejection reason is logged, never echoed.
			assert.Equal(t, "Unauthorized", body["error"])
		})
	}
}
