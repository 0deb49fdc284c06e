package service

import (
	"context"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage interfaces satisfied by the repository package. Services depend on
// these instead of the concrete repositories so tests can swap in in-memory
// fakes.

type QuizStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error)
	FindByLecture(ctx context.Context, lectureID primitive.ObjectID) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type QuestionStore interface {
	FindByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]models.Question, error)
	Create(ctx context.Context, question *models.Question) error
	DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error
}

type OptionStore interface {
	FindByQuestions(ctx context.Context, questionIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.Option, error)
	Create(ctx context.Context, option *models.Option) error
	DeleteByQuestions(ctx context.Context, questionIDs []primitive.ObjectID) error
}

type SessionStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.QuizSession, error)
	FindInProgress(ctx context.Context, userID, quizID primitive.ObjectID) (*models.QuizSession, error)
	Create(ctx context.Context, session *models.QuizSession) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *models.QuizAttemptDetail) error
	FindByIDForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.QuizAttemptDetail, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizAttemptDetail, error)
	DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error
}

type LectureStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lecture, error)
	FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Lecture, error)
	Create(ctx context.Context, lecture *models.Lecture) error
	SetQuiz(ctx context.Context, lectureID primitive.ObjectID, quizID *primitive.ObjectID) error
}

type ProgressStore interface {
	FindByUserAndCourse(ctx context.Context, userID, courseID primitive.ObjectID) (*models.CourseProgress, error)
	Save(ctx context.Context, progress *models.CourseProgress) error
	PullQuizAttempts(ctx context.Context, quizID primitive.ObjectID) error
}

type CourseStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	AddLecture(ctx context.Context, courseID, lectureID primitive.ObjectID) error
}
