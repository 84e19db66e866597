package models

import "gorm.io/gorm"

type Quiz struct {
	gorm.Model
	CourseID  uint       `gorm:"index" json:"course_id"`
	LessonID  uint       `gorm:"uniqueIndex" json:"lesson_id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions,omitempty"`
}

type Question struct {
	gorm.Model
	QuizID       uint     `gorm:"index" json:"quiz_id"`
	QuestionText string   `json:"question_text"`
	DisplayOrder int      `json:"display_order"`
	Options      []Option `json:"options,omitempty"`
}

type Option struct {
	gorm.Model
	QuestionID   uint   `gorm:"index" json:"question_id"`
	OptionText   string `json:"option_text"`
	IsCorrect    bool   `json:"-"`
	DisplayOrder int    `json:"display_order"`
}

// QuizSubmission is one graded attempt. Retakes always append a new
// submission, never update an old one.
type QuizSubmission struct {
	gorm.Model
	QuizID  uint         `gorm:"index" json:"quiz_id"`
	UserID  uint         `gorm:"index" json:"user_id"`
	Score   int          `json:"score"`
	Answers []QuizAnswer `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
}

type QuizAnswer struct {
	gorm.Model
	SubmissionID   uint  `gorm:"index" json:"submission_id"`
	QuestionID     uint  `json:"question_id"`
	ChosenOptionID *uint `json:"chosen_option_id"`
	IsCorrect      bool  `json:"is_correct"`
}
