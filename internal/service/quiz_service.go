package service

import (
	"context"
	"errors"
	"time"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuizService struct {
	Quizzes   QuizStore
	Questions QuestionStore
	Options   OptionStore
	Sessions  SessionStore
	Attempts  AttemptStore
	Lectures  LectureStore
	Progress  ProgressStore
}

func NewQuizService(
	quizzes QuizStore,
	questions QuestionStore,
	options OptionStore,
	sessions SessionStore,
	attempts AttemptStore,
	lectures LectureStore,
	progress ProgressStore,
) *QuizService {
	return &QuizService{
		Quizzes:   quizzes,
		Questions: questions,
		Options:   options,
		Sessions:  sessions,
		Attempts:  attempts,
		Lectures:  lectures,
		Progress:  progress,
	}
}

type OptionInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionInput struct {
	Text              string        `json:"text"`
	Type              string        `json:"type"`
	Points            int           `json:"points"`
	CorrectAnswerText string        `json:"correct_answer_text"`
	Options           []OptionInput `json:"options"`
}

type QuizInput struct {
	LectureID       string          `json:"lecture_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DurationMinutes *int            `json:"duration_minutes"`
	PassPercentage  int             `json:"pass_percentage"`
	Questions       []QuestionInput `json:"questions"`
}

// validateQuizInput checks the whole payload before anything is written, so a
// rejected request leaves no partial rows behind. Fails fast on the first
// offending question, naming it.
func validateQuizInput(in *QuizInput) error {
	if in.Title == "" {
		return validationf("quiz title is required")
	}
	if in.PassPercentage < 0 || in.PassPercentage > 100 {
		return validationf("pass percentage must be between 0 and 100")
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return validationf("duration must be a positive number of minutes")
	}
	if len(in.Questions) == 0 {
		return validationf("a quiz must have at least one question")
	}
	for _, q := range in.Questions {
		if q.Text == "" || q.Type == "" || q.Points <= 0 {
			return validationf("each question must have text, type and positive points")
		}
		switch q.Type {
		case models.QuestionMultipleChoice, models.QuestionTrueFalse:
			if len(q.Options) == 0 {
				return validationf("question %q of type %s must have options", q.Text, q.Type)
			}
			hasCorrect := false
			for _, opt := range q.Options {
				if opt.Text == "" {
					return validationf("question %q has an option without text", q.Text)
				}
				if opt.IsCorrect {
					hasCorrect = true
				}
			}
			if !hasCorrect {
				return validationf("question %q must have at least one correct option", q.Text)
			}
		case models.QuestionShortAnswer:
			if q.CorrectAnswerText == "" {
				return validationf("short answer question %q must have a correct answer text", q.Text)
			}
		default:
			return validationf("question %q has unsupported type %q", q.Text, q.Type)
		}
	}
	return nil
}

// Create validates the whole quiz, then writes quiz, questions and options and
// points the lecture at the new quiz. A storage failure mid-write rolls back
// the rows created so far.
func (s *QuizService) Create(ctx context.Context, userID primitive.ObjectID, in *QuizInput) (*models.Quiz, error) {
	if err := validateQuizInput(in); err != nil {
		return nil, err
	}
	lectureID, err := primitive.ObjectIDFromHex(in.LectureID)
	if err != nil {
		return nil, validationf("invalid lecture id")
	}

	lecture, err := s.Lectures.FindByID(ctx, lectureID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLectureNotFound
		}
		return nil, err
	}
	if _, err := s.Quizzes.FindByLecture(ctx, lectureID); err == nil {
		return nil, ErrQuizExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := time.Now().UTC()
	quiz := &models.Quiz{
		LectureID:       lectureID,
		Title:           in.Title,
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		PassPercentage:  in.PassPercentage,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Quizzes.Create(ctx, quiz); err != nil {
		// The unique lecture_id index catches a concurrent create.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrQuizExists
		}
		return nil, err
	}

	if err := s.createQuestions(ctx, quiz.ID, in.Questions); err != nil {
		s.rollbackQuiz(ctx, quiz.ID)
		return nil, err
	}

	if err := s.Lectures.SetQuiz(ctx, lecture.ID, &quiz.ID); err != nil {
		s.rollbackQuiz(ctx, quiz.ID)
		return nil, err
	}
	return quiz, nil
}

// Update replaces the quiz metadata and its entire question set. The payload
// is validated before the old questions are dropped, so a rejected edit leaves
// the quiz untouched; a storage failure during the replacement restores the
// previous question set from a snapshot taken up front.
func (s *QuizService) Update(ctx context.Context, quizID primitive.ObjectID, in *QuizInput) (*models.Quiz, error) {
	if err := validateQuizInput(in); err != nil {
		return nil, err
	}

	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	quiz.Title = in.Title
	quiz.Description = in.Description
	quiz.DurationMinutes = in.DurationMinutes
	quiz.PassPercentage = in.PassPercentage
	quiz.UpdatedAt = time.Now().UTC()
	err = s.Quizzes.Update(ctx, quiz.ID, bson.M{
		"title":            quiz.Title,
		"description":      quiz.Description,
		"duration_minutes": quiz.DurationMinutes,
		"pass_percentage":  quiz.PassPercentage,
		"updated_at":       quiz.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	snapshot, err := s.Questions.FindByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	snapshotOptions, err := s.Options.FindByQuestions(ctx, questionIDs(snapshot))
	if err != nil {
		return nil, err
	}

	if err := s.deleteQuestions(ctx, quiz.ID); err != nil {
		return nil, err
	}
	if err := s.createQuestions(ctx, quiz.ID, in.Questions); err != nil {
		s.restoreQuestions(ctx, quiz.ID, snapshot, snapshotOptions)
		return nil, err
	}
	return quiz, nil
}

// Delete removes a quiz and everything hanging off it: questions, options,
// sessions, attempt records and the rollup entries inside progress documents,
// then clears the lecture's back reference.
func (s *QuizService) Delete(ctx context.Context, userID primitive.ObjectID, role string, quizID primitive.ObjectID) error {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrQuizNotFound
		}
		return err
	}
	if quiz.CreatedBy != userID && role != "admin" && role != "instructor" {
		return ErrNotAuthorized
	}

	if err := s.deleteQuestions(ctx, quiz.ID); err != nil {
		return err
	}
	if err := s.Sessions.DeleteByQuiz(ctx, quiz.ID); err != nil {
		return err
	}
	if err := s.Attempts.DeleteByQuiz(ctx, quiz.ID); err != nil {
		return err
	}
	if err := s.Progress.PullQuizAttempts(ctx, quiz.ID); err != nil {
		return err
	}
	if err := s.Lectures.SetQuiz(ctx, quiz.LectureID, nil); err != nil {
		return err
	}
	return s.Quizzes.Delete(ctx, quiz.ID)
}

// QuestionWithOptions is the author view of one question.
type QuestionWithOptions struct {
	models.Question
	Options []models.Option `json:"options"`
}

type QuizView struct {
	Quiz      models.Quiz           `json:"quiz"`
	Questions []QuestionWithOptions `json:"questions"`
}

func (s *QuizService) Get(ctx context.Context, quizID primitive.ObjectID) (*QuizView, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return s.buildView(ctx, quiz)
}

func (s *QuizService) GetByLecture(ctx context.Context, lectureID primitive.ObjectID) (*QuizView, error) {
	quiz, err := s.Quizzes.FindByLecture(ctx, lectureID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return s.buildView(ctx, quiz)
}

// Student view types carry no correctness information.
type StudentOption struct {
	ID   primitive.ObjectID `json:"id"`
	Text string             `json:"text"`
}

type StudentQuestion struct {
	ID      primitive.ObjectID `json:"id"`
	Text    string             `json:"text"`
	Type    string             `json:"type"`
	Points  int                `json:"points"`
	Options []StudentOption    `json:"options"`
}

type StudentQuizView struct {
	Quiz      models.Quiz       `json:"quiz"`
	Questions []StudentQuestion `json:"questions"`
}

// GetForStudent returns the quiz with the correct-answer text and is_correct
// flags stripped, so the taking view cannot leak answers.
func (s *QuizService) GetForStudent(ctx context.Context, quizID primitive.ObjectID) (*StudentQuizView, error) {
	view, err := s.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	student := &StudentQuizView{Quiz: view.Quiz, Questions: make([]StudentQuestion, 0, len(view.Questions))}
	for _, q := range view.Questions {
		sq := StudentQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Type,
			Points:  q.Points,
			Options: make([]StudentOption, 0, len(q.Options)),
		}
		for _, opt := range q.Options {
			sq.Options = append(sq.Options, StudentOption{ID: opt.ID, Text: opt.Text})
		}
		student.Questions = append(student.Questions, sq)
	}
	return student, nil
}

func (s *QuizService) buildView(ctx context.Context, quiz *models.Quiz) (*QuizView, error) {
	questions, err := s.Questions.FindByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	optionsByQuestion, err := s.Options.FindByQuestions(ctx, questionIDs(questions))
	if err != nil {
		return nil, err
	}
	view := &QuizView{Quiz: *quiz, Questions: make([]QuestionWithOptions, 0, len(questions))}
	for _, q := range questions {
		options := optionsByQuestion[q.ID]
		if options == nil {
			options = []models.Option{}
		}
		view.Questions = append(view.Questions, QuestionWithOptions{Question: q, Options: options})
	}
	return view, nil
}

func (s *QuizService) createQuestions(ctx context.Context, quizID primitive.ObjectID, inputs []QuestionInput) error {
	for _, in := range inputs {
		question := &models.Question{
			QuizID: quizID,
			Text:   in.Text,
			Type:   in.Type,
			Points: in.Points,
		}
		if in.Type == models.QuestionShortAnswer {
			question.CorrectAnswerText = in.CorrectAnswerText
		}
		if err := s.Questions.Create(ctx, question); err != nil {
			return err
		}
		if !models.HasOptions(in.Type) {
			continue
		}
		for _, opt := range in.Options {
			option := &models.Option{
				QuestionID: question.ID,
				Text:       opt.Text,
				IsCorrect:  opt.IsCorrect,
			}
			if err := s.Options.Create(ctx, option); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *QuizService) deleteQuestions(ctx context.Context, quizID primitive.ObjectID) error {
	questions, err := s.Questions.FindByQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if err := s.Options.DeleteByQuestions(ctx, questionIDs(questions)); err != nil {
		return err
	}
	return s.Questions.DeleteByQuiz(ctx, quizID)
}

// rollbackQuiz is the compensating cleanup for a failed create.
func (s *QuizService) rollbackQuiz(ctx context.Context, quizID primitive.ObjectID) {
	_ = s.deleteQuestions(ctx, quizID)
	_ = s.Quizzes.Delete(ctx, quizID)
}

// restoreQuestions is the compensating cleanup for a failed update: it drops
// whatever the partial replacement wrote and re-inserts the snapshot. The
// snapshot rows keep their original ids, so attempt records referencing them
// stay valid.
func (s *QuizService) restoreQuestions(ctx context.Context, quizID primitive.ObjectID, questions []models.Question, optionsByQuestion map[primitive.ObjectID][]models.Option) {
	_ = s.deleteQuestions(ctx, quizID)
	for i := range questions {
		q := questions[i]
		if err := s.Questions.Create(ctx, &q); err != nil {
			continue
		}
		for _, opt := range optionsByQuestion[q.ID] {
			o := opt
			_ = s.Options.Create(ctx, &o)
		}
	}
}
