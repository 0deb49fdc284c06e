package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeSessionStore struct {
	inProgress *models.QuizSession
	createErr  error
	created    *models.QuizSession
}

func (f *fakeSessionStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.QuizSession, error) {
	if f.inProgress != nil && f.inProgress.ID == id {
		return f.inProgress, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSessionStore) FindInProgress(ctx context.Context, userID, quizID primitive.ObjectID) (*models.QuizSession, error) {
	if f.inProgress != nil && f.inProgress.UserID == userID && f.inProgress.QuizID == quizID {
		return f.inProgress, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSessionStore) Create(ctx context.Context, session *models.QuizSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	session.ID = primitive.NewObjectID()
	f.created = session
	return nil
}

func (f *fakeSessionStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if f.inProgress != nil && f.inProgress.ID == id {
		f.inProgress.Status = status
	}
	return nil
}

func (f *fakeSessionStore) DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error {
	return nil
}

func timedQuiz(minutes int) *models.Quiz {
	return &models.Quiz{
		ID:              primitive.NewObjectID(),
		LectureID:       primitive.NewObjectID(),
		Title:           "Go basics",
		DurationMinutes: &minutes,
		PassPercentage:  70,
	}
}

func TestStartResumesExistingSession(t *testing.T) {
	quiz := timedQuiz(30)
	userID := primitive.NewObjectID()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	existing := &models.QuizSession{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		QuizID:    quiz.ID,
		StartTime: start,
		Status:    models.SessionInProgress,
	}
	sessions := &fakeSessionStore{inProgress: existing}
	svc := NewSessionService(sessions, newFakeQuizStore(quiz))

	result, err := svc.Start(context.Background(), userID, quiz.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !result.Resumed {
		t.Error("expected the existing session to be resumed")
	}
	if result.SessionID != existing.ID.Hex() {
		t.Errorf("SessionID = %s, want %s", result.SessionID, existing.ID.Hex())
	}
	if result.StartTime == nil || !result.StartTime.Equal(start) {
		t.Errorf("resume must keep the original start time, got %v", result.StartTime)
	}
	if sessions.created != nil {
		t.Error("resume must not create a second session")
	}
}

func TestStartMapsDuplicateKeyToConflict(t *testing.T) {
	quiz := timedQuiz(30)
	sessions := &fakeSessionStore{
		createErr: mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}},
	}
	svc := NewSessionService(sessions, newFakeQuizStore(quiz))

	_, err := svc.Start(context.Background(), primitive.NewObjectID(), quiz.ID)
	if !errors.Is(err, ErrSessionConflict) {
		t.Fatalf("Start() error = %v, want ErrSessionConflict", err)
	}
}

func TestStartUntimedQuizSkipsSession(t *testing.T) {
	quiz := &models.Quiz{ID: primitive.NewObjectID(), Title: "Untimed"}
	sessions := &fakeSessionStore{}
	svc := NewSessionService(sessions, newFakeQuizStore(quiz))

	result, err := svc.Start(context.Background(), primitive.NewObjectID(), quiz.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !result.Untimed {
		t.Error("expected an untimed start result")
	}
	if sessions.created != nil {
		t.Error("untimed quizzes must not persist a session")
	}
}

func TestStartUnknownQuiz(t *testing.T) {
	svc := NewSessionService(&fakeSessionStore{}, newFakeQuizStore())

	_, err := svc.Start(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("Start() error = %v, want ErrQuizNotFound", err)
	}
}

func TestExpired(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	session := &models.QuizSession{StartTime: start}

	testCases := []struct {
		name     string
		duration int
		now      time.Time
		want     bool
	}{
		{"well within window", 10, start.Add(1 * time.Minute), false},
		{"just before deadline", 10, start.Add(10*time.Minute - time.Second), false},
		{"exactly at deadline", 10, start.Add(10 * time.Minute), false},
		{"just past deadline", 10, start.Add(10*time.Minute + time.Second), true},
		{"long after deadline", 1, start.Add(2 * time.Hour), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := expired(session, tc.duration, tc.now); got != tc.want {
				t.Errorf("expired(session, %d, start+%v) = %v, want %v", tc.duration, tc.now.Sub(start), got, tc.want)
			}
		})
	}
}
