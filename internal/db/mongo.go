package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client

func InitMongo(uri string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	Client = client
	log.Println("Connected to MongoDB")
}

// EnsureIndexes creates the indexes the service relies on. The partial unique
// index on quiz_sessions is the enforcement mechanism for the one-active-
// session invariant: a concurrent duplicate insert fails with a duplicate key
// error instead of creating a second in_progress session.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection("quizzes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "lecture_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = database.Collection("quiz_sessions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "quiz_id", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": "in_progress"}),
	})
	if err != nil {
		return err
	}

	_, err = database.Collection("questions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "quiz_id", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = database.Collection("options").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "question_id", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = database.Collection("quiz_attempts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = database.Collection("course_progress").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "course_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
