package repository

import (
	"context"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("quizzes")}
}

func (r *QuizRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByLecture(ctx context.Context, lectureID primitive.ObjectID) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.Col.FindOne(ctx, bson.M{"lecture_id": lectureID}).Decode(&quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	res, err := r.Col.InsertOne(ctx, quiz)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		quiz.ID = oid
	}
	return nil
}

func (r *QuizRepository) Update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *QuizRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
