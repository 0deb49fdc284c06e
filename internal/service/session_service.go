package service

import (
	"context"
	"errors"
	"time"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionService struct {
	Sessions SessionStore
	Quizzes  QuizStore
}

func NewSessionService(sessions SessionStore, quizzes QuizStore) *SessionService {
	return &SessionService{Sessions: sessions, Quizzes: quizzes}
}

// StartResult is what the client needs to run its countdown. For untimed
// quizzes no session is persisted and Untimed is set instead.
type StartResult struct {
	SessionID       string     `json:"session_id,omitempty"`
	QuizID          string     `json:"quiz_id"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Untimed         bool       `json:"untimed"`
	Resumed         bool       `json:"resumed"`
}

// Start begins a timed attempt, or resumes the caller's existing in_progress
// session unchanged so a page reload keeps the original countdown. Losing a
// concurrent start race surfaces as ErrSessionConflict; the winner's session
// is returned by the retry.
func (s *SessionService) Start(ctx context.Context, userID, quizID primitive.ObjectID) (*StartResult, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if !quiz.Timed() {
		return &StartResult{QuizID: quiz.ID.Hex(), Untimed: true}, nil
	}

	existing, err := s.Sessions.FindInProgress(ctx, userID, quizID)
	if err == nil {
		return &StartResult{
			SessionID:       existing.ID.Hex(),
			QuizID:          quiz.ID.Hex(),
			StartTime:       &existing.StartTime,
			DurationMinutes: quiz.DurationMinutes,
			Resumed:         true,
		}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := time.Now().UTC()
	session := &models.QuizSession{
		UserID:    userID,
		QuizID:    quizID,
		StartTime: now,
		Status:    models.SessionInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSessionConflict
		}
		return nil, err
	}

	return &StartResult{
		SessionID:       session.ID.Hex(),
		QuizID:          quiz.ID.Hex(),
		StartTime:       &session.StartTime,
		DurationMinutes: quiz.DurationMinutes,
	}, nil
}

// expired reports whether now is past the session deadline. The countdown a
// client renders is advisory; this comparison at submission time is the
// authoritative check.
func expired(session *models.QuizSession, durationMinutes int, now time.Time) bool {
	return now.After(session.Deadline(durationMinutes))
}
