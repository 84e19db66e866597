package routes

import (
	"log"

	"github.com/ryu-zaki/learning-manangement-system/backend/controllers"
	"github.com/ryu-zaki/learning-manangement-system/backend/middleware"
	"github.com/ryu-zaki/learning-manangement-system/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, codec *utils.TokenCodec, logger *log.Logger) {
	authRequired := middleware.AuthMiddleware(codec, logger)

	// Auth routes
	authController := controllers.NewAuthController(db, codec)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authRequired, authController.Me)

	// Course routes; list and content are public, enrolling is not
	courseController := controllers.NewCourseController(db)
	app.Get("/api/courses", courseController.GetCourses)
	app.Get("/api/courses/:id", courseController.GetCourseContent)
	app.Post("/api/courses/:id/enroll", authRequired, courseController.Enroll)

	// Lesson routes
	lessonController := controllers.NewLessonController(db)
	lessons := app.Group("/api/lessons", authRequired)
	lessons.Get("/:id", lessonController.GetLesson)
	lessons.Post("/:id/complete", lessonController.CompleteLesson)

	// Quiz routes, addressed by lesson id to match client navigation
	quizController := controllers.NewQuizController(db, logger)
	quizzes := app.Group("/api/quizzes", authRequired)
	quizzes.Get("/lesson/:lessonId", quizController.GetQuizByLesson)
	quizzes.Post("/lesson/:lessonId/submit", quizController.SubmitQuiz)

	// Progress routes
	progressController := controllers.NewProgressController(db)
	progress := app.Group("/api/progress", authRequired)
	progress.Get("/dashboard", progressController.DashboardStats)
	progress.Get("/courses", progressController.CourseProgress)
}
