package repository

import (
	"context"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) FindByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]models.Question, error) {
	cur, err := r.Col.Find(ctx, bson.M{"quiz_id": quizID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, cur.Err()
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	res, err := r.Col.InsertOne(ctx, question)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		question.ID = oid
	}
	return nil
}

func (r *QuestionRepository) DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"quiz_id": quizID})
	return err
}
