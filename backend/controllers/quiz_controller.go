package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/ryu-zaki/learning-manangement-system/backend/middleware"
	"github.com/ryu-zaki/learning-manangement-system/backend/models"
	"github.com/ryu-zaki/learning-manangement-system/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewQuizController(db *gorm.DB, logger *log.Logger) *QuizController {
	return &QuizController{DB: db, Logger: logger}
}

// answerResult is the per-question grading outcome returned to the client
// and persisted as a QuizAnswer detail row.
type answerResult struct {
	QuestionID     uint  `json:"question_id"`
	ChosenOptionID *uint `json:"chosen_option_id"`
	IsCorrect      bool  `json:"is_correct"`
}

// GetQuizByLesson godoc
// @Summary Get the quiz attached to a lesson
// @Description Option correctness flags are never exposed here.
// @Tags quizzes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/quizzes/lesson/{lessonId} [get]
func (qc *QuizController) GetQuizByLesson(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	quiz, err := qc.quizForLesson(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found for this lesson")
		}
		return utils.Internal(c, "Could not query database")
	}

	questions := make([]fiber.Map, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		options := make([]fiber.Map, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, fiber.Map{
				"id":          opt.ID,
				"question_id": opt.QuestionID,
				"option_text": opt.OptionText,
			})
		}
		questions = append(questions, fiber.Map{
			"id":            q.ID,
			"question_text": q.QuestionText,
			"options":       options,
		})
	}

	return c.JSON(fiber.Map{
		"id":        quiz.ID,
		"course_id": quiz.CourseID,
		"lesson_id": quiz.LessonID,
		"title":     quiz.Title,
		"questions": questions,
	})
}

// SubmitQuiz godoc
// @Summary Grade a quiz submission
// @Description Answers are option indices in question order. The graded
// submission (header plus one detail row per question) is written in a
// single transaction; a failed write leaves no partial state.
// @Tags quizzes
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/quizzes/lesson/{lessonId}/submit [post]
func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input struct {
		Answers []int `json:"answers" validate:"required,min=1"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "No answers provided")
	}

	quiz, err := qc.quizForLesson(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.Internal(c, "Could not query database")
	}

	// No partial grading: the submission must answer every question.
	if len(input.Answers) != len(quiz.Questions) {
		return utils.BadRequest(c, "Answer count mismatch with question count")
	}

	score, results := gradeAnswers(quiz.Questions, input.Answers)

	submission := models.QuizSubmission{
		QuizID: quiz.ID,
		UserID: userID,
		Score:  score,
	}
	err = qc.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		details := make([]models.QuizAnswer, 0, len(results))
		for _, r := range results {
			details = append(details, models.QuizAnswer{
				SubmissionID:   submission.ID,
				QuestionID:     r.QuestionID,
				ChosenOptionID: r.ChosenOptionID,
				IsCorrect:      r.IsCorrect,
			})
		}
		return tx.Create(&details).Error
	})
	if err != nil {
		qc.Logger.Printf("quiz submission failed: user=%d quiz=%d: %v", userID, quiz.ID, err)
		return utils.Internal(c, "Failed to submit quiz")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "Quiz submitted successfully",
		"score":          score,
		"totalQuestions": len(quiz.Questions),
		"results":        results,
	})
}

// quizForLesson loads the quiz for a lesson with questions and options in
// their presentation order. Grading and fetching must see the same order,
// since submitted answers are indices into it.
func (qc *QuizController) quizForLesson(lessonID int) (*models.Quiz, error) {
	var quiz models.Quiz
	err := qc.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order, id")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order, id")
		}).
		Where("lesson_id = ?", lessonID).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// gradeAnswers compares each submitted option index against the position
// of the first option marked correct. A question with no option marked
// correct has no correct index and every answer to it grades incorrect.
// Out-of-range indices grade incorrect with no chosen option recorded.
func gradeAnswers(questions []models.Question, answers []int) (int, []answerResult) {
	score := 0
	results := make([]answerResult, 0, len(questions))

	for i, question := range questions {
		correctIndex := -1
		for idx, opt := range question.Options {
			if opt.IsCorrect {
				correctIndex = idx
				break
			}
		}

		var chosen *uint
		if answers[i] >= 0 && answers[i] < len(question.Options) {
			id := question.Options[answers[i]].ID
			chosen = &id
		}

		correct := correctIndex >= 0 && answers[i] == correctIndex
		if correct {
			score++
		}

		results = append(results, answerResult{
			QuestionID:     question.ID,
			ChosenOptionID: chosen,
			IsCorrect:      correct,
		})
	}

	return score, results
}
