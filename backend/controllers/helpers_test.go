package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ryu-zaki/learning-manangement-system/backend/models"
	"github.com/ryu-zaki/learning-manangement-system/backend/routes"
	"github.com/ryu-zaki/learning-manangement-system/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled second connection would see an empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.Migrate(db))

	codec := utils.NewTokenCodec("test-secret", time.Hour)
	app := fiber.New()
	routes.SetupRoutes(app, db, codec, utils.InitLogger())

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

var userSeq int

// registerUser creates an account through the API and returns its token
// and user id.
func registerUser(t *testing.T, app *fiber.App) (string, uint) {
	t.Helper()

	userSeq++
	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"first_name": "Test",
		"last_name":  "Student",
		"email":      fmt.Sprintf("student%d@example.com", userSeq),
		"password":   "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user := body["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}

// seedCourse creates a course with the given number of lessons.
func seedCourse(t *testing.T, db *gorm.DB, lessonCount int) (models.Course, []models.Lesson) {
	t.Helper()

	course := models.Course{Title: "Go Fundamentals", Level: "beginner", Duration: "4 weeks"}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]models.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := models.Lesson{
			CourseID:     course.ID,
			Title:        fmt.Sprintf("Lesson %d", i+1),
			Content:      "...",
			DisplayOrder: i + 1,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

// seedQuiz attaches a quiz to a lesson with one question per entry of
// correctIndexes; each question has three options and the option at the
// given index is the correct one (-1 marks none correct).
func seedQuiz(t *testing.T, db *gorm.DB, course models.Course, lesson models.Lesson, correctIndexes []int) models.Quiz {
	t.Helper()

	quiz := models.Quiz{CourseID: course.ID, LessonID: lesson.ID, Title: lesson.Title + " Quiz"}
	require.NoError(t, db.Create(&quiz).Error)

	for qi, correct := range correctIndexes {
		question := models.Question{
			QuizID:       quiz.ID,
			QuestionText: fmt.Sprintf("Question %d", qi+1),
			DisplayOrder: qi + 1,
		}
		require.NoError(t, db.Create(&question).Error)

		for oi := 0; oi < 3; oi++ {
			option := models.Option{
				QuestionID:   question.ID,
				OptionText:   fmt.Sprintf("Option %d", oi+1),
				IsCorrect:    oi == correct,
				DisplayOrder: oi + 1,
			}
			require.NoError(t, db.Create(&option).Error)
		}
	}
	return quiz
}

func testQuizSubmitPath(lessonID uint) string {
	return fmt.Sprintf("/api/quizzes/lesson/%d/submit", lessonID)
}

func jsonKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func enroll(t *testing.T, app *fiber.App, token string, courseID uint) {
	t.Helper()
	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", courseID), token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func completeLesson(t *testing.T, app *fiber.App, token string, lessonID uint) {
	t.Helper()
	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/api/lessons/%d/complete", lessonID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
