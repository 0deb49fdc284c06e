package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quiz session statuses. A session never leaves a terminal status.
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionTimedOut   = "timed_out"
)

// QuizSession records one in-progress timed attempt. The partial unique index
// on (user_id, quiz_id, status) scoped to in_progress guarantees at most one
// active session per user and quiz; see db.EnsureIndexes.
type QuizSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	QuizID    primitive.ObjectID `bson:"quiz_id" json:"quiz_id"`
	StartTime time.Time          `bson:"start_time" json:"start_time"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Deadline returns the last instant a submission is accepted.
func (s *QuizSession) Deadline(durationMinutes int) time.Time {
	return s.StartTime.Add(time.Duration(durationMinutes) * time.Minute)
}
