package controllers

import (
	"errors"

	"github.com/ryu-zaki/learning-manangement-system/backend/middleware"
	"github.com/ryu-zaki/learning-manangement-system/backend/models"
	"github.com/ryu-zaki/learning-manangement-system/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB    *gorm.DB
	Codec *utils.TokenCodec
}

func NewAuthController(db *gorm.DB, codec *utils.TokenCodec) *AuthController {
	return &AuthController{DB: db, Codec: codec}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a student account and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=6"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "All fields are required.")
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.Conflict(c, "Email already in use.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Internal(c, "Could not query database")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Internal(c, "Could not hash password")
	}

	user := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         "student",
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.Internal(c, "Could not create user")
	}

	token, err := ac.Codec.Issue(user.ID)
	if err != nil {
		return utils.Internal(c, "Could not generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"role":       user.Role,
		},
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate by email and password, returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Email and password are required.")
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusUnauthorized, "Invalid email or password.")
		}
		return utils.Internal(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid email or password.")
	}

	token, err := ac.Codec.Issue(user.ID)
	if err != nil {
		return utils.Internal(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"role":       user.Role,
		},
	})
}

// Me godoc
// @Summary Current user
// @Description Returns the authenticated user with the per-course progress map
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/auth/me [get]
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c)
		}
		return utils.Internal(c, "Could not query database")
	}

	progress, err := ac.progressMap(userID)
	if err != nil {
		return utils.Internal(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"role":       user.Role,
		"progress":   progress,
	})
}

// progressMap reduces completion events and submissions into the shape
// the client keeps in its auth context: courseId -> {completedLessons,
// quizScores keyed by lesson id}.
func (ac *AuthController) progressMap(userID uint) (map[uint]*models.UserProgress, error) {
	type lessonRow struct {
		CourseID uint
		LessonID uint
	}
	var lessons []lessonRow
	err := ac.DB.Model(&models.LessonProgress{}).
		Select("lessons.course_id AS course_id, lesson_progresses.lesson_id AS lesson_id").
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ?", userID).
		Scan(&lessons).Error
	if err != nil {
		return nil, err
	}

	type scoreRow struct {
		CourseID uint
		LessonID uint
		Score    float64
	}
	var scores []scoreRow
	// Ascending order lets the latest submission (ties broken by highest
	// id) overwrite earlier ones in the map below.
	err = ac.DB.Model(&models.QuizSubmission{}).
		Select("quizzes.course_id AS course_id, quizzes.lesson_id AS lesson_id, quiz_submissions.score AS score").
		Joins("JOIN quizzes ON quizzes.id = quiz_submissions.quiz_id").
		Where("quiz_submissions.user_id = ?", userID).
		Order("quiz_submissions.created_at, quiz_submissions.id").
		Scan(&scores).Error
	if err != nil {
		return nil, err
	}

	progress := make(map[uint]*models.UserProgress)
	entry := func(courseID uint) *models.UserProgress {
		if p, ok := progress[courseID]; ok {
			return p
		}
		p := &models.UserProgress{
			CompletedLessons: []uint{},
			QuizScores:       map[uint]float64{},
		}
		progress[courseID] = p
		return p
	}

	for _, l := range lessons {
		p := entry(l.CourseID)
		p.CompletedLessons = append(p.CompletedLessons, l.LessonID)
	}
	for _, s := range scores {
		entry(s.CourseID).QuizScores[s.LessonID] = s.Score
	}

	return progress, nil
}
