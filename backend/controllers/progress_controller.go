package controllers

import (
	"github.com/ryu-zaki/learning-manangement-system/backend/middleware"
	"github.com/ryu-zaki/learning-manangement-system/backend/models"
	"github.com/ryu-zaki/learning-manangement-system/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB *gorm.DB
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{DB: db}
}

// DashboardStats godoc
// @Summary Dashboard counters
// @Description Counts are scoped to the user's enrolled courses; progress
// rows against courses the user is not enrolled in are excluded.
// @Tags progress
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/progress/dashboard [get]
func (pc *ProgressController) DashboardStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var totalLessons int64
	err := pc.DB.Model(&models.Lesson{}).
		Joins("JOIN enrollments ON enrollments.course_id = lessons.course_id").
		Where("enrollments.user_id = ?", userID).
		Count(&totalLessons).Error
	if err != nil {
		return utils.Internal(c, "Could not query database")
	}

	var completedLessons int64
	err = pc.DB.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Joins("JOIN enrollments ON enrollments.course_id = lessons.course_id").
		Where("lesson_progresses.user_id = ? AND enrollments.user_id = ?", userID, userID).
		Count(&completedLessons).Error
	if err != nil {
		return utils.Internal(c, "Could not query database")
	}

	var quizzesCompleted int64
	err = pc.DB.Model(&models.QuizSubmission{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_submissions.quiz_id").
		Joins("JOIN enrollments ON enrollments.course_id = quizzes.course_id").
		Where("quiz_submissions.user_id = ? AND enrollments.user_id = ?", userID, userID).
		Distinct("quiz_submissions.quiz_id").
		Count(&quizzesCompleted).Error
	if err != nil {
		return utils.Internal(c, "Could not query database")
	}

	var coursesEnrolled int64
	err = pc.DB.Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Count(&coursesEnrolled).Error
	if err != nil {
		return utils.Internal(c, "Could not query database")
	}

	return c.JSON(models.DashboardStats{
		TotalLessons:     int(totalLessons),
		CompletedLessons: int(completedLessons),
		QuizzesCompleted: int(quizzesCompleted),
		CoursesEnrolled:  int(coursesEnrolled),
	})
}

// CourseProgress godoc
// @Summary Per-course progress rollups
// @Description One row per enrolled course. averageQuizScore is the mean
// of each attempted quiz's latest score, 0 when nothing was attempted.
// @Tags progress
// @Produce json
// @Success 200 {array} models.CourseProgress
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/progress/courses [get]
func (pc *ProgressController) CourseProgress(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var courses []models.Course
	err := pc.DB.Model(&models.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Find(&courses).Error
	if err != nil {
		return utils.Internal(c, "Could not query database")
	}

	result := make([]models.CourseProgress, 0, len(courses))
	for _, course := range courses {
		row, err := pc.courseRollup(userID, course)
		if err != nil {
			return utils.Internal(c, "Could not query database")
		}
		result = append(result, row)
	}

	return c.JSON(result)
}

func (pc *ProgressController) courseRollup(userID uint, course models.Course) (models.CourseProgress, error) {
	row := models.CourseProgress{
		CourseID: course.ID,
		Title:    course.Title,
		Level:    course.Level,
		Duration: course.Duration,
	}

	var totalLessons int64
	if err := pc.DB.Model(&models.Lesson{}).
		Where("course_id = ?", course.ID).
		Count(&totalLessons).Error; err != nil {
		return row, err
	}
	row.TotalLessons = int(totalLessons)

	var totalQuizzes int64
	if err := pc.DB.Model(&models.Quiz{}).
		Where("course_id = ?", course.ID).
		Count(&totalQuizzes).Error; err != nil {
		return row, err
	}
	row.TotalQuizzes = int(totalQuizzes)

	var lessonsCompleted int64
	if err := pc.DB.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lessons.course_id = ?", userID, course.ID).
		Distinct("lesson_progresses.lesson_id").
		Count(&lessonsCompleted).Error; err != nil {
		return row, err
	}
	row.LessonsCompleted = int(lessonsCompleted)

	// Latest score per quiz: ascending order lets later submissions (ties
	// broken by id) overwrite earlier ones in the reduction.
	type submissionRow struct {
		QuizID uint
		Score  float64
	}
	var submissions []submissionRow
	if err := pc.DB.Model(&models.QuizSubmission{}).
		Select("quiz_submissions.quiz_id AS quiz_id, quiz_submissions.score AS score").
		Joins("JOIN quizzes ON quizzes.id = quiz_submissions.quiz_id").
		Where("quiz_submissions.user_id = ? AND quizzes.course_id = ?", userID, course.ID).
		Order("quiz_submissions.created_at, quiz_submissions.id").
		Scan(&submissions).Error; err != nil {
		return row, err
	}

	latest := make(map[uint]float64)
	for _, s := range submissions {
		latest[s.QuizID] = s.Score
	}
	row.QuizzesCompleted = len(latest)

	if len(latest) > 0 {
		var sum float64
		for _, score := range latest {
			sum += score
		}
		row.AverageQuizScore = sum / float64(len(latest))
	}

	return row, nil
}
