package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Category  string               `bson:"category" json:"category"`
	CreatedBy primitive.ObjectID   `bson:"created_by" json:"created_by"`
	Lectures  []primitive.ObjectID `bson:"lectures" json:"lectures"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

type Lecture struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID      primitive.ObjectID `bson:"course_id" json:"course_id"`
	Title         string             `bson:"title" json:"title"`
	VideoURL      string             `bson:"video_url,omitempty" json:"video_url,omitempty"`
	IsPreviewFree bool               `bson:"is_preview_free" json:"is_preview_free"`
	// QuizID is set when a quiz is attached to the lecture, cleared when the
	// quiz is deleted.
	QuizID    *primitive.ObjectID `bson:"quiz_id,omitempty" json:"quiz_id,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}
