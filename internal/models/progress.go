package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizAttemptSummary is the lightweight rollup of one graded attempt kept
// inside a progress document. The full detail lives in quiz_attempts.
type QuizAttemptSummary struct {
	AttemptID   primitive.ObjectID `bson:"attempt_id" json:"attempt_id"`
	QuizID      primitive.ObjectID `bson:"quiz_id" json:"quiz_id"`
	Score       int                `bson:"score" json:"score"`
	Passed      bool               `bson:"passed" json:"passed"`
	AttemptedAt time.Time          `bson:"attempted_at" json:"attempted_at"`
}

type LectureProgress struct {
	LectureID    primitive.ObjectID   `bson:"lecture_id" json:"lecture_id"`
	Viewed       bool                 `bson:"viewed" json:"viewed"`
	QuizAttempts []QuizAttemptSummary `bson:"quiz_attempts" json:"quiz_attempts"`
}

// CourseProgress is a denormalized per (user, course) rollup. It is never the
// source of truth for scoring.
type CourseProgress struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	CourseID        primitive.ObjectID `bson:"course_id" json:"course_id"`
	Completed       bool               `bson:"completed" json:"completed"`
	LectureProgress []LectureProgress  `bson:"lecture_progress" json:"lecture_progress"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Lecture looks up the progress entry for a lecture, returning its index or -1.
func (p *CourseProgress) Lecture(lectureID primitive.ObjectID) int {
	for i := range p.LectureProgress {
		if p.LectureProgress[i].LectureID == lectureID {
			return i
		}
	}
	return -1
}
