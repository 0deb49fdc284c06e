package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmittedAnswer is the graded record of one question within an attempt.
type SubmittedAnswer struct {
	QuestionID          primitive.ObjectID   `bson:"question_id" json:"question_id"`
	QuestionType        string               `bson:"question_type" json:"question_type"`
	SelectedOptionIDs   []primitive.ObjectID `bson:"selected_option_ids" json:"selected_option_ids"`
	SubmittedAnswerText string               `bson:"submitted_answer_text,omitempty" json:"submitted_answer_text,omitempty"`
	IsCorrect           bool                 `bson:"is_correct" json:"is_correct"`
	PointsAwarded       int                  `bson:"points_awarded" json:"points_awarded"`
}

// QuizAttemptDetail is the immutable graded outcome of one submission. It is
// the canonical source for result display; the session that produced it is
// closed and never consulted again.
type QuizAttemptDetail struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuizID         primitive.ObjectID `bson:"quiz_id" json:"quiz_id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Score          int                `bson:"score" json:"score"`
	TotalPoints    int                `bson:"total_points" json:"total_points"`
	PassPercentage int                `bson:"pass_percentage" json:"pass_percentage"`
	Passed         bool               `bson:"passed" json:"passed"`
	SubmittedAt    time.Time          `bson:"submitted_at" json:"submitted_at"`
	Answers        []SubmittedAnswer  `bson:"answers" json:"answers"`
}
