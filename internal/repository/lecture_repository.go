package repository

import (
	"context"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LectureRepository struct {
	Col *mongo.Collection
}

func NewLectureRepository(db *mongo.Database) *LectureRepository {
	return &LectureRepository{Col: db.Collection("lectures")}
}

func (r *LectureRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lecture, error) {
	var lecture models.Lecture
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&lecture); err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *LectureRepository) FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Lecture, error) {
	cur, err := r.Col.Find(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var lectures []models.Lecture
	for cur.Next(ctx) {
		var l models.Lecture
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		lectures = append(lectures, l)
	}
	return lectures, cur.Err()
}

func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	res, err := r.Col.InsertOne(ctx, lecture)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		lecture.ID = oid
	}
	return nil
}

// SetQuiz attaches or clears (nil) the lecture's quiz reference.
func (r *LectureRepository) SetQuiz(ctx context.Context, lectureID primitive.ObjectID, quizID *primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"quiz_id": quizID}}
	if quizID == nil {
		update = bson.M{"$unset": bson.M{"quiz_id": ""}}
	}
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": lectureID}, update)
	return err
}
