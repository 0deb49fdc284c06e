package repository

import (
	"context"
	"time"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("course_progress")}
}

func (r *ProgressRepository) FindByUserAndCourse(ctx context.Context, userID, courseID primitive.ObjectID) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "course_id": courseID}).Decode(&progress)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Save upserts the whole document keyed by (user, course), mirroring a
// load-mutate-save flow.
func (r *ProgressRepository) Save(ctx context.Context, progress *models.CourseProgress) error {
	progress.UpdatedAt = time.Now().UTC()
	filter := bson.M{"user_id": progress.UserID, "course_id": progress.CourseID}
	update := bson.M{"$set": bson.M{
		"user_id":          progress.UserID,
		"course_id":        progress.CourseID,
		"completed":        progress.Completed,
		"lecture_progress": progress.LectureProgress,
		"updated_at":       progress.UpdatedAt,
	}}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// PullQuizAttempts removes every rollup entry for a quiz across all progress
// documents; used by the quiz cascade delete.
func (r *ProgressRepository) PullQuizAttempts(ctx context.Context, quizID primitive.ObjectID) error {
	_, err := r.Col.UpdateMany(ctx,
		bson.M{"lecture_progress.quiz_attempts.quiz_id": quizID},
		bson.M{"$pull": bson.M{"lecture_progress.$[].quiz_attempts": bson.M{"quiz_id": quizID}}},
	)
	return err
}
