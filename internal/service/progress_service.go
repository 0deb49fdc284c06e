package service

import (
	"context"
	"errors"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProgressService struct {
	Progress ProgressStore
	Courses  CourseStore
	Lectures LectureStore
}

func NewProgressService(progress ProgressStore, courses CourseStore, lectures LectureStore) *ProgressService {
	return &ProgressService{Progress: progress, Courses: courses, Lectures: lectures}
}

type ProgressView struct {
	Course    models.Course            `json:"course"`
	Lectures  []models.Lecture         `json:"lectures"`
	Progress  []models.LectureProgress `json:"progress"`
	Completed bool                     `json:"completed"`
}

// Get returns the course with its lectures plus the caller's progress. A user
// with no progress document yet gets an empty, not-completed view.
func (s *ProgressService) Get(ctx context.Context, userID, courseID primitive.ObjectID) (*ProgressView, error) {
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

	view := &ProgressView{Course: *course, Lectures: lectures, Progress: []models.LectureProgress{}}
	progress, err := s.Progress.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return view, nil
		}
		return nil, err
	}
	view.Progress = progress.LectureProgress
	view.Completed = progress.Completed
	return view, nil
}

// MarkLectureViewed flags a lecture as viewed and recomputes the course
// completed flag as the AND of viewed over every lecture in the course.
func (s *ProgressService) MarkLectureViewed(ctx context.Context, userID, courseID, lectureID primitive.ObjectID) error {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCourseNotFound
		}
		return err
	}

	progress, err := s.loadOrNew(ctx, userID, courseID)
	if err != nil {
		return err
	}

	if i := progress.Lecture(lectureID); i >= 0 {
		progress.LectureProgress[i].Viewed = true
	} else {
		progress.LectureProgress = append(progress.LectureProgress, models.LectureProgress{
			LectureID:    lectureID,
			Viewed:       true,
			QuizAttempts: []models.QuizAttemptSummary{},
		})
	}
	progress.Completed = allLecturesViewed(course.Lectures, progress.LectureProgress)

	return s.Progress.Save(ctx, progress)
}

// RecordAttempt appends an attempt summary under the lecture that owns the
// quiz, creating the progress document or the lecture entry as needed. Called
// best-effort from the submission flow.
func (s *ProgressService) RecordAttempt(ctx context.Context, userID primitive.ObjectID, quiz *models.Quiz, attempt *models.QuizAttemptDetail) error {
	lecture, err := s.Lectures.FindByID(ctx, quiz.LectureID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrLectureNotFound
		}
		return err
	}

	progress, err := s.loadOrNew(ctx, userID, lecture.CourseID)
	if err != nil {
		return err
	}

	summary := models.QuizAttemptSummary{
		AttemptID:   attempt.ID,
		QuizID:      attempt.QuizID,
		Score:       attempt.Score,
		Passed:      attempt.Passed,
		AttemptedAt: attempt.SubmittedAt,
	}
	if i := progress.Lecture(lecture.ID); i >= 0 {
		progress.LectureProgress[i].QuizAttempts = append(progress.LectureProgress[i].QuizAttempts, summary)
	} else {
		progress.LectureProgress = append(progress.LectureProgress, models.LectureProgress{
			LectureID:    lecture.ID,
			Viewed:       false,
			QuizAttempts: []models.QuizAttemptSummary{summary},
		})
	}

	return s.Progress.Save(ctx, progress)
}

// SetCompleted bulk-marks every lecture viewed (or unviewed) and sets the
// completed flag accordingly.
func (s *ProgressService) SetCompleted(ctx context.Context, userID, courseID primitive.ObjectID, completed bool) error {
	progress, err := s.Progress.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProgressNotFound
		}
		return err
	}
	for i := range progress.LectureProgress {
		progress.LectureProgress[i].Viewed = completed
	}
	progress.Completed = completed
	return s.Progress.Save(ctx, progress)
}

func (s *ProgressService) loadOrNew(ctx context.Context, userID, courseID primitive.ObjectID) (*models.CourseProgress, error) {
	progress, err := s.Progress.FindByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	return &models.CourseProgress{
		UserID:          userID,
		CourseID:        courseID,
		LectureProgress: []models.LectureProgress{},
	}, nil
}

// allLecturesViewed is the completed rollup: every lecture of the course must
// have a viewed progress entry.
func allLecturesViewed(courseLectures []primitive.ObjectID, progress []models.LectureProgress) bool {
	if len(courseLectures) == 0 {
		return false
	}
	for _, lectureID := range courseLectures {
		viewed := false
		for _, lp := range progress {
			if lp.LectureID == lectureID && lp.Viewed {
				viewed = true
				break
			}
		}
		if !viewed {
			return false
		}
	}
	return true
}
