package service

import (
	"context"
	"errors"
	"time"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CourseService struct {
	Courses  CourseStore
	Lectures LectureStore
}

func NewCourseService(courses CourseStore, lectures LectureStore) *CourseService {
	return &CourseService{Courses: courses, Lectures: lectures}
}

type CourseInput struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category" binding:"required"`
}

func (s *CourseService) Create(ctx context.Context, userID primitive.ObjectID, in *CourseInput) (*models.Course, error) {
	now := time.Now().UTC()
	course := &models.Course{
		Title:     in.Title,
		Category:  in.Category,
		CreatedBy: userID,
		Lectures:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

type CourseView struct {
	Course   models.Course    `json:"course"`
	Lectures []models.Lecture `json:"lectures"`
}

func (s *CourseService) Get(ctx context.Context, courseID primitive.ObjectID) (*CourseView, error) {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	lectures, err := s.Lectures.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return &CourseView{Course: *course, Lectures: lectures}, nil
}

func (s *CourseService) ListByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Course, error) {
	return s.Courses.FindByCreator(ctx, userID)
}

type LectureInput struct {
	Title         string `json:"title" binding:"required"`
	VideoURL      string `json:"video_url"`
	IsPreviewFree bool   `json:"is_preview_free"`
}

// AddLecture creates a lecture and links it into the course's lecture list.
func (s *CourseService) AddLecture(ctx context.Context, courseID primitive.ObjectID, in *LectureInput) (*models.Lecture, error) {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	lecture := &models.Lecture{
		CourseID:      course.ID,
		Title:         in.Title,
		VideoURL:      in.VideoURL,
		IsPreviewFree: in.IsPreviewFree,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Lectures.Create(ctx, lecture); err != nil {
		return nil, err
	}
	if err := s.Courses.AddLecture(ctx, course.ID, lecture.ID); err != nil {
		return nil, err
	}
	return lecture, nil
}
