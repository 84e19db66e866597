package controllers

import (
	"errors"
	"strconv"

	"github.com/ryu-zaki/learning-manangement-system/backend/middleware"
	"github.com/ryu-zaki/learning-manangement-system/backend/models"
	"github.com/ryu-zaki/learning-manangement-system/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// GetCourses godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /api/courses [get]
func (cc *CourseController) GetCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Find(&courses).Error; err != nil {
		return utils.Internal(c, "Could not query database")
	}

	instructorIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		if course.InstructorID != 0 {
			instructorIDs = append(instructorIDs, course.InstructorID)
		}
	}

	instructors := make(map[uint]string)
	if len(instructorIDs) > 0 {
		var users []models.User
		if err := cc.DB.Where("id IN ?", instructorIDs).Find(&users).Error; err != nil {
			return utils.Internal(c, "Could not query database")
		}
		for _, u := range users {
			instructors[u.ID] = u.FirstName + " " + u.LastName
		}
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":              course.ID,
			"title":           course.Title,
			"description":     course.Description,
			"level":           course.Level,
			"duration":        course.Duration,
			"instructor_id":   course.InstructorID,
			"instructor_name": instructors[course.InstructorID],
		})
	}

	return c.JSON(result)
}

// GetCourseContent godoc
// @Summary Get a course with its lessons and quizzes
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/courses/{id} [get]
func (cc *CourseController) GetCourseContent(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.Internal(c, "Could not query database")
	}

	var lessons []models.Lesson
	if err := cc.DB.Where("course_id = ?", courseID).Order("display_order, id").Find(&lessons).Error; err != nil {
		return utils.Internal(c, "Could not query database")
	}

	var quizzes []models.Quiz
	if err := cc.DB.Where("course_id = ?", courseID).Find(&quizzes).Error; err != nil {
		return utils.Internal(c, "Could not query database")
	}

	quizList := make([]fiber.Map, 0, len(quizzes))
	for _, q := range quizzes {
		quizList = append(quizList, fiber.Map{
			"id":        q.ID,
			"course_id": q.CourseID,
			"lesson_id": q.LessonID,
			"title":     q.Title,
		})
	}

	return c.JSON(fiber.Map{
		"id":            course.ID,
		"title":         course.Title,
		"description":   course.Description,
		"level":         course.Level,
		"duration":      course.Duration,
		"instructor_id": course.InstructorID,
		"lessons":       lessons,
		"quizzes":       quizList,
		// The content model carries no persisted projects; the client
		// still maps over this field.
		"projects": []fiber.Map{},
	})
}

// Enroll godoc
// @Summary Enroll the current user in a course
// @Tags courses
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/courses/{id}/enroll [post]
func (cc *CourseController) Enroll(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.Internal(c, "Could not query database")
	}

	enrollment := models.Enrollment{UserID: userID, CourseID: uint(courseID)}
	res := cc.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment)
	if res.Error != nil {
		return utils.Internal(c, "Failed to enroll")
	}
	if res.RowsAffected == 0 {
		return c.JSON(fiber.Map{"message": "Already enrolled"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Enrolled successfully"})
}
