package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"Backend-Retreat-Survey/src/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@example.com"))
	assert.True(t, IsEmail("  ana@example.com "))
	assert.False(t, IsEmail("ana@"))
	assert.False(t, IsEmail("   "))
}

func TestParseBodyAndErrors(t *testing.T) {
	app := fiber.New()
	app.Put("/", func(c *fiber.Ctx) error {
		var req models.SetAnswerRequest
		if err := ParseBody(c, &req); err != nil {
			return HandleError(c, fiber.StatusBadRequest, err.Error())
		}
		return HandleValidationError(c, "check", models.ValidationErrors{"q": *req.Value})
	})

	send := func(body string) (int, models.ErrorResponse) {
		req := httptest.NewRequest("PUT", "/", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		data, _ := io.ReadAll(resp.Body)
		var out models.ErrorResponse
		require.NoError(t, json.Unmarshal(data, &out))
		return resp.StatusCode, out
	}

	status, out := send(`{"value":"x"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, models.ValidationErrors{"q": "x"}, out.Errors)

	status, out = send(`{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, out.Message, "Invalid input")

	status, _ = send(`{not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
