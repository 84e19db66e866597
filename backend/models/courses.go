package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Level        string   `json:"level"` // beginner, intermediate, advanced
	Duration     string   `json:"duration"`
	InstructorID uint     `json:"instructor_id"`
	Lessons      []Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	gorm.Model
	CourseID     uint   `gorm:"index" json:"course_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	DisplayOrder int    `json:"display_order"`
}

type Enrollment struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex:idx_user_course" json:"user_id"`
	CourseID uint `gorm:"uniqueIndex:idx_user_course" json:"course_id"`
}
