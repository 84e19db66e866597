package controllers_test

import (
	"fmt"
	"testing"

	"github.com/ryu-zaki/learning-manangement-system/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLesson(t *testing.T) {
	app, db := setupTestApp(t)
	token, _ := registerUser(t, app)

	_, lessons := seedCourse(t, db, 1)

	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/api/lessons/%d", lessons[0].ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lesson 1", body["title"])

	resp, body = doJSON(t, app, "GET", "/api/lessons/9999", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Lesson not found", body["error"])
}

func TestCompleteLessonIdempotent(t *testing.T) {
	app, db := setupTestApp(t)
	token, userID := registerUser(t, app)

	_, lessons := seedCourse(t, db, 1)

	// Completing twice is a no-op, never an error, never a duplicate.
	for i := 0; i < 2; i++ {
		resp, body := doJSON(t, app, "POST", fmt.Sprintf("/api/lessons/%d/complete", lessons[0].ID), token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Lesson marked as complete", body["message"])
	}

	var count int64
	require.NoError(t, db.Model(&models.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessons[0].ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompleteLessonNotFound(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerUser(t, app)

	resp, body := doJSON(t, app, "POST", "/api/lessons/9999/complete", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Lesson not found", body["error"])
}
