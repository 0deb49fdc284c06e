package repository

import (
	"context"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("quiz_attempts")}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.QuizAttemptDetail) error {
	res, err := r.Col.InsertOne(ctx, attempt)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		attempt.ID = oid
	}
	return nil
}

// FindByIDForUser scopes the lookup to the owner so a foreign attempt id
// behaves as not found.
func (r *AttemptRepository) FindByIDForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.QuizAttemptDetail, error) {
	var attempt models.QuizAttemptDetail
	err := r.Col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&attempt)
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizAttemptDetail, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.QuizAttemptDetail
	for cur.Next(ctx) {
		var a models.QuizAttemptDetail
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, cur.Err()
}

func (r *AttemptRepository) DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"quiz_id": quizID})
	return err
}
