package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/ryu-zaki/learning-manangement-system/backend/middleware"
	"github.com/ryu-zaki/learning-manangement-system/backend/models"
	"github.com/ryu-zaki/learning-manangement-system/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonController struct {
	DB *gorm.DB
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db}
}

// GetLesson godoc
// @Summary Get a single lesson
// @Tags lessons
// @Produce json
// @Success 200 {object} models.Lesson
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/lessons/{id} [get]
func (lc *LessonController) GetLesson(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.Internal(c, "Could not query database")
	}

	return c.JSON(lesson)
}

// CompleteLesson godoc
// @Summary Mark a lesson complete for the current user
// @Description Re-completing a lesson refreshes the timestamp; it never
// creates a duplicate row and is never an error.
// @Tags lessons
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/lessons/{id}/complete [post]
func (lc *LessonController) CompleteLesson(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.Internal(c, "Could not query database")
	}

	// Upsert keyed by (user_id, lesson_id): completion is idempotent by
	// construction.
	progress := models.LessonProgress{
		UserID:      userID,
		LessonID:    uint(lessonID),
		CompletedAt: time.Now(),
	}
	err = lc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completed_at": time.Now()}),
	}).Create(&progress).Error
	if err != nil {
		return utils.Internal(c, "Could not save progress")
	}

	return c.JSON(fiber.Map{"message": "Lesson marked as complete"})
}
