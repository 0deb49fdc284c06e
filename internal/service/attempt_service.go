package service

import (
	"context"
	"errors"
	"log"
	"time"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AttemptService struct {
	Attempts  AttemptStore
	Sessions  SessionStore
	Quizzes   QuizStore
	Questions QuestionStore
	Options   OptionStore
	Progress  *ProgressService
}

func NewAttemptService(
	attempts AttemptStore,
	sessions SessionStore,
	quizzes QuizStore,
	questions QuestionStore,
	options OptionStore,
	progress *ProgressService,
) *AttemptService {
	return &AttemptService{
		Attempts:  attempts,
		Sessions:  sessions,
		Quizzes:   quizzes,
		Questions: questions,
		Options:   options,
		Progress:  progress,
	}
}

type SubmitResult struct {
	AttemptID   string `json:"attempt_id"`
	Score       int    `json:"score"`
	TotalPoints int    `json:"total_points"`
	Passed      bool   `json:"passed"`
	Status      string `json:"status"`
}

// Submit grades a submission. For timed quizzes the referenced session must be
// the caller's in_progress session for this quiz; a late submission flips it
// to timed_out and is rejected with ErrTimeExpired. The session transition is
// persisted before grading so a closed session can never be graded twice. The
// progress rollup at the end is best effort: a failure there is logged, never
// surfaced, because the attempt record is the durable source of truth.
func (s *AttemptService) Submit(ctx context.Context, userID, quizID primitive.ObjectID, sessionID string, answers []AnswerInput) (*SubmitResult, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if quiz.Timed() {
		if err := s.closeSession(ctx, userID, quiz, sessionID, now); err != nil {
			return nil, err
		}
	}

	questions, err := s.Questions.FindByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	optionsByQuestion, err := s.Options.FindByQuestions(ctx, questionIDs(questions))
	if err != nil {
		return nil, err
	}

	graded := Score(questions, optionsByQuestion, answers)
	passed := Passed(graded.Score, graded.TotalPoints, quiz.PassPercentage)

	attempt := &models.QuizAttemptDetail{
		QuizID:         quizID,
		UserID:         userID,
		Score:          graded.Score,
		TotalPoints:    graded.TotalPoints,
		PassPercentage: quiz.PassPercentage,
		Passed:         passed,
		SubmittedAt:    now,
		Answers:        graded.Answers,
	}
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		return nil, err
	}

	if err := s.Progress.RecordAttempt(ctx, userID, quiz, attempt); err != nil {
		log.Printf("progress rollup failed for attempt %s: %v", attempt.ID.Hex(), err)
	}

	return &SubmitResult{
		AttemptID:   attempt.ID.Hex(),
		Score:       graded.Score,
		TotalPoints: graded.TotalPoints,
		Passed:      passed,
		Status:      models.SessionCompleted,
	}, nil
}

// closeSession validates the session and moves it to its terminal status.
func (s *AttemptService) closeSession(ctx context.Context, userID primitive.ObjectID, quiz *models.Quiz, sessionID string, now time.Time) error {
	sid, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return validationf("invalid quiz session id")
	}
	session, err := s.Sessions.FindByID(ctx, sid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrSessionNotFound
		}
		return err
	}
	if session.UserID != userID || session.QuizID != quiz.ID || session.Status != models.SessionInProgress {
		return ErrSessionNotFound
	}

	if expired(session, *quiz.DurationMinutes, now) {
		if err := s.Sessions.UpdateStatus(ctx, session.ID, models.SessionTimedOut); err != nil {
			return err
		}
		return ErrTimeExpired
	}
	return s.Sessions.UpdateStatus(ctx, session.ID, models.SessionCompleted)
}

// AttemptAnswerView is one stored answer joined back to its question and
// option texts so the client can render results in one round trip.
type AttemptAnswerView struct {
	models.SubmittedAnswer
	QuestionText      string          `json:"question_text"`
	QuestionPoints    int             `json:"question_points"`
	CorrectAnswerText string          `json:"correct_answer_text,omitempty"`
	SubmittedOptions  []models.Option `json:"submitted_options"`
	CorrectOptions    []models.Option `json:"correct_options"`
}

type AttemptView struct {
	Attempt models.QuizAttemptDetail `json:"attempt"`
	Quiz    models.Quiz              `json:"quiz"`
	Answers []AttemptAnswerView      `json:"answers"`
}

// GetAttempt returns one graded attempt with reconstructed question and option
// detail. Lookup is scoped to the owner, so someone else's attempt id reads as
// not found.
func (s *AttemptService) GetAttempt(ctx context.Context, userID, attemptID primitive.ObjectID) (*AttemptView, error) {
	attempt, err := s.Attempts.FindByIDForUser(ctx, attemptID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}

	quiz, err := s.Quizzes.FindByID(ctx, attempt.QuizID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	questions, err := s.Questions.FindByQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	optionsByQuestion, err := s.Options.FindByQuestions(ctx, questionIDs(questions))
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	view := &AttemptView{Attempt: *attempt, Answers: make([]AttemptAnswerView, 0, len(attempt.Answers))}
	if quiz != nil {
		view.Quiz = *quiz
	}
	for _, answer := range attempt.Answers {
		av := AttemptAnswerView{
			SubmittedAnswer:  answer,
			SubmittedOptions: []models.Option{},
			CorrectOptions:   []models.Option{},
		}
		if question := byID[answer.QuestionID]; question != nil {
			av.QuestionText = question.Text
			av.QuestionPoints = question.Points
			av.CorrectAnswerText = question.CorrectAnswerText
			options := optionsByQuestion[question.ID]
			for _, opt := range options {
				if opt.IsCorrect {
					av.CorrectOptions = append(av.CorrectOptions, opt)
				}
			}
			for _, selected := range answer.SelectedOptionIDs {
				for _, opt := range options {
					if opt.ID == selected {
						av.SubmittedOptions = append(av.SubmittedOptions, opt)
					}
				}
			}
		}
		view.Answers = append(view.Answers, av)
	}
	return view, nil
}

// AttemptSummary is one history row with quiz metadata attached.
type AttemptSummary struct {
	models.QuizAttemptDetail
	QuizTitle           string `json:"quiz_title"`
	QuizDurationMinutes *int   `json:"quiz_duration_minutes,omitempty"`
}

// ListAttempts returns the caller's attempt history, newest first.
func (s *AttemptService) ListAttempts(ctx context.Context, userID primitive.ObjectID) ([]AttemptSummary, error) {
	attempts, err := s.Attempts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]AttemptSummary, 0, len(attempts))
	titles := make(map[primitive.ObjectID]*models.Quiz)
	for _, attempt := range attempts {
		quiz, ok := titles[attempt.QuizID]
		if !ok {
			quiz, err = s.Quizzes.FindByID(ctx, attempt.QuizID)
			if err != nil {
				if !errors.Is(err, mongo.ErrNoDocuments) {
					return nil, err
				}
				quiz = nil
			}
			titles[attempt.QuizID] = quiz
		}
		summary := AttemptSummary{QuizAttemptDetail: attempt}
		if quiz != nil {
			summary.QuizTitle = quiz.Title
			summary.QuizDurationMinutes = quiz.DurationMinutes
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func questionIDs(questions []models.Question) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}
