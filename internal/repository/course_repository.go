package repository

import (
	"context"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CourseRepository struct {
	Col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{Col: db.Collection("courses")}
}

func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Course, error) {
	cur, err := r.Col.Find(ctx, bson.M{"created_by": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var courses []models.Course
	for cur.Next(ctx) {
		var c models.Course
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, cur.Err()
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	res, err := r.Col.InsertOne(ctx, course)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		course.ID = oid
	}
	return nil
}

func (r *CourseRepository) AddLecture(ctx context.Context, courseID, lectureID primitive.ObjectID) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": courseID}, bson.M{"$push": bson.M{"lectures": lectureID}})
	return err
}
