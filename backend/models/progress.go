package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress records one lesson completion per (user, lesson).
// The composite unique index makes re-completion an upsert, not a
// duplicate row.
type LessonProgress struct {
	gorm.Model
	UserID      uint      `gorm:"uniqueIndex:idx_user_lesson" json:"user_id"`
	LessonID    uint      `gorm:"uniqueIndex:idx_user_lesson" json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// CourseProgress is the derived per-course rollup for the achievements
// page. It is computed on read and never stored.
type CourseProgress struct {
	CourseID          uint    `json:"id"`
	Title             string  `json:"title"`
	Level             string  `json:"level"`
	Duration          string  `json:"duration"`
	LessonsCompleted  int     `json:"lessonsCompleted"`
	TotalLessons      int     `json:"totalLessons"`
	QuizzesCompleted  int     `json:"quizzesCompleted"`
	TotalQuizzes      int     `json:"totalQuizzes"`
	AverageQuizScore  float64 `json:"averageQuizScore"`
	TotalProjects     int     `json:"totalProjects"`
	ProjectsCompleted int     `json:"projectsCompleted"`
}

// DashboardStats is the counting rollup for the dashboard, scoped to the
// user's enrolled courses.
type DashboardStats struct {
	TotalLessons     int `json:"totalLessons"`
	CompletedLessons int `json:"completedLessons"`
	QuizzesCompleted int `json:"quizzesCompleted"`
	CoursesEnrolled  int `json:"coursesEnrolled"`
}

// UserProgress is the per-course progress map attached to /api/auth/me.
// Keys are course ids; quiz scores are keyed by lesson id because the
// client navigates quizzes through lessons.
type UserProgress struct {
	CompletedLessons []uint           `json:"completedLessons"`
	QuizScores       map[uint]float64 `json:"quizScores"`
}
