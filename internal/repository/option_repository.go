package repository

import (
	"context"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OptionRepository struct {
	Col *mongo.Collection
}

func NewOptionRepository(db *mongo.Database) *OptionRepository {
	return &OptionRepository{Col: db.Collection("options")}
}

// FindByQuestions loads the options of several questions in one query, keyed
// by question id.
func (r *OptionRepository) FindByQuestions(ctx context.Context, questionIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.Option, error) {
	byQuestion := make(map[primitive.ObjectID][]models.Option, len(questionIDs))
	if len(questionIDs) == 0 {
		return byQuestion, nil
	}
	opts, err := r.find(ctx, bson.M{"question_id": bson.M{"$in": questionIDs}})
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}
	return byQuestion, nil
}

func (r *OptionRepository) Create(ctx context.Context, option *models.Option) error {
	res, err := r.Col.InsertOne(ctx, option)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		option.ID = oid
	}
	return nil
}

func (r *OptionRepository) DeleteByQuestions(ctx context.Context, questionIDs []primitive.ObjectID) error {
	if len(questionIDs) == 0 {
		return nil
	}
	_, err := r.Col.DeleteMany(ctx, bson.M{"question_id": bson.M{"$in": questionIDs}})
	return err
}

func (r *OptionRepository) find(ctx context.Context, filter bson.M) ([]models.Option, error) {
	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var options []models.Option
	for cur.Next(ctx) {
		var o models.Option
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, cur.Err()
}
