package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question types supported by the grading engine.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

// Quiz is bound 1:1 to a lecture; the lecture_id index in db.EnsureIndexes
// enforces the uniqueness.
type Quiz struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LectureID   primitive.ObjectID `bson:"lecture_id" json:"lecture_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	// DurationMinutes is nil for untimed quizzes.
	DurationMinutes *int               `bson:"duration_minutes,omitempty" json:"duration_minutes"`
	PassPercentage  int                `bson:"pass_percentage" json:"pass_percentage"`
	CreatedBy       primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Timed reports whether submissions against this quiz carry a deadline.
func (q *Quiz) Timed() bool {
	return q.DurationMinutes != nil
}

type Question struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuizID primitive.ObjectID `bson:"quiz_id" json:"quiz_id"`
	Text   string             `bson:"text" json:"text"`
	Type   string             `bson:"type" json:"type"`
	Points int                `bson:"points" json:"points"`
	// CorrectAnswerText is only set for short_answer questions.
	CorrectAnswerText string `bson:"correct_answer_text,omitempty" json:"correct_answer_text,omitempty"`
}

type Option struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionID primitive.ObjectID `bson:"question_id" json:"question_id"`
	Text       string             `bson:"text" json:"text"`
	IsCorrect  bool               `bson:"is_correct" json:"is_correct"`
}

// HasOptions reports whether a question type carries an option list.
func HasOptions(questionType string) bool {
	return questionType == QuestionMultipleChoice || questionType == QuestionTrueFalse
}
