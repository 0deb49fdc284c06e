package repository

import (
	"context"
	"time"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("quiz_sessions")}
}

func (r *SessionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.QuizSession, error) {
	var session models.QuizSession
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// FindInProgress returns the active session for a (user, quiz) pair, if any.
func (r *SessionRepository) FindInProgress(ctx context.Context, userID, quizID primitive.ObjectID) (*models.QuizSession, error) {
	var session models.QuizSession
	err := r.Col.FindOne(ctx, bson.M{
		"user_id": userID,
		"quiz_id": quizID,
		"status":  models.SessionInProgress,
	}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Create inserts a new session. The partial unique index makes a concurrent
// insert for the same (user, quiz) fail with a duplicate key error; callers
// map that to a conflict.
func (r *SessionRepository) Create(ctx context.Context, session *models.QuizSession) error {
	res, err := r.Col.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid
	}
	return nil
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

func (r *SessionRepository) DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"quiz_id": quizID})
	return err
}
