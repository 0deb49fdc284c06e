package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeQuizStore struct {
	quizzes map[primitive.ObjectID]*models.Quiz
}

func newFakeQuizStore(quizzes ...*models.Quiz) *fakeQuizStore {
	m := make(map[primitive.ObjectID]*models.Quiz, len(quizzes))
	for _, q := range quizzes {
		m[q.ID] = q
	}
	return &fakeQuizStore{quizzes: m}
}

func (f *fakeQuizStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	if q, ok := f.quizzes[id]; ok {
		return q, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeQuizStore) FindByLecture(ctx context.Context, lectureID primitive.ObjectID) (*models.Quiz, error) {
	for _, q := range f.quizzes {
		if q.LectureID == lectureID {
			return q, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeQuizStore) Create(ctx context.Context, quiz *models.Quiz) error {
	if quiz.ID.IsZero() {
		quiz.ID = primitive.NewObjectID()
	}
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeQuizStore) Update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	return nil
}

func (f *fakeQuizStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.quizzes, id)
	return nil
}

type fakeQuestionStore struct {
	byQuiz      map[primitive.ObjectID][]models.Question
	failCreates int
}

func (f *fakeQuestionStore) FindByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]models.Question, error) {
	return append([]models.Question(nil), f.byQuiz[quizID]...), nil
}

func (f *fakeQuestionStore) Create(ctx context.Context, q *models.Question) error {
	if f.failCreates > 0 {
		f.failCreates--
		return errors.New("insert failed")
	}
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	f.byQuiz[q.QuizID] = append(f.byQuiz[q.QuizID], *q)
	return nil
}

func (f *fakeQuestionStore) DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error {
	delete(f.byQuiz, quizID)
	return nil
}

type fakeOptionStore struct {
	byQuestion map[primitive.ObjectID][]models.Option
}

func (f *fakeOptionStore) FindByQuestions(ctx context.Context, questionIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.Option, error) {
	out := make(map[primitive.ObjectID][]models.Option, len(questionIDs))
	for _, id := range questionIDs {
		if opts := f.byQuestion[id]; len(opts) > 0 {
			out[id] = append([]models.Option(nil), opts...)
		}
	}
	return out, nil
}

func (f *fakeOptionStore) Create(ctx context.Context, o *models.Option) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	f.byQuestion[o.QuestionID] = append(f.byQuestion[o.QuestionID], *o)
	return nil
}

func (f *fakeOptionStore) DeleteByQuestions(ctx context.Context, questionIDs []primitive.ObjectID) error {
	for _, id := range questionIDs {
		delete(f.byQuestion, id)
	}
	return nil
}

func intPtr(v int) *int { return &v }

func validInput() *QuizInput {
	return &QuizInput{
		LectureID:       "65f000000000000000000001",
		Title:           "Go basics",
		DurationMinutes: intPtr(10),
		PassPercentage:  70,
		Questions: []QuestionInput{
			{
				Text:   "Is Go garbage collected?",
				Type:   "true_false",
				Points: 5,
				Options: []OptionInput{
					{Text: "True", IsCorrect: true},
					{Text: "False"},
				},
			},
			{
				Text:              "Name the Go mascot",
				Type:              "short_answer",
				Points:            5,
				CorrectAnswerText: "gopher",
			},
		},
	}
}

func TestValidateQuizInput(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(in *QuizInput)
		wantErr string
	}{
		{"valid payload", func(in *QuizInput) {}, ""},
		{"missing title", func(in *QuizInput) { in.Title = "" }, "title is required"},
		{"negative pass percentage", func(in *QuizInput) { in.PassPercentage = -1 }, "between 0 and 100"},
		{"pass percentage over 100", func(in *QuizInput) { in.PassPercentage = 101 }, "between 0 and 100"},
		{"zero duration", func(in *QuizInput) { in.DurationMinutes = intPtr(0) }, "positive number of minutes"},
		{"untimed is allowed", func(in *QuizInput) { in.DurationMinutes = nil }, ""},
		{"no questions", func(in *QuizInput) { in.Questions = nil }, "at least one question"},
		{"question without text", func(in *QuizInput) { in.Questions[0].Text = "" }, "text, type and positive points"},
		{"question with zero points", func(in *QuizInput) { in.Questions[0].Points = 0 }, "text, type and positive points"},
		{
			"choice question without options",
			func(in *QuizInput) { in.Questions[0].Options = nil },
			`question "Is Go garbage collected?" of type true_false must have options`,
		},
		{
			"choice question without a correct option",
			func(in *QuizInput) { in.Questions[0].Options[0].IsCorrect = false },
			`question "Is Go garbage collected?" must have at least one correct option`,
		},
		{
			"short answer without correct text",
			func(in *QuizInput) { in.Questions[1].CorrectAnswerText = "" },
			`short answer question "Name the Go mascot" must have a correct answer text`,
		},
		{
			"unsupported question type",
			func(in *QuizInput) { in.Questions[1].Type = "multi_select" },
			`unsupported type "multi_select"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(in)

			err := validateQuizInput(in)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.wantErr)
			}
			if !IsValidation(err) {
				t.Errorf("expected a validation error, got %T", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func seededQuizService(failCreates int) (*QuizService, *models.Quiz, models.Question, models.Option) {
	quiz := &models.Quiz{
		ID:             primitive.NewObjectID(),
		LectureID:      primitive.NewObjectID(),
		Title:          "Go basics",
		PassPercentage: 70,
	}
	question := models.Question{
		ID:     primitive.NewObjectID(),
		QuizID: quiz.ID,
		Text:   "Does Go have classes?",
		Type:   models.QuestionTrueFalse,
		Points: 5,
	}
	option := models.Option{
		ID:         primitive.NewObjectID(),
		QuestionID: question.ID,
		Text:       "False",
		IsCorrect:  true,
	}
	svc := &QuizService{
		Quizzes: newFakeQuizStore(quiz),
		Questions: &fakeQuestionStore{
			byQuiz:      map[primitive.ObjectID][]models.Question{quiz.ID: {question}},
			failCreates: failCreates,
		},
		Options: &fakeOptionStore{
			byQuestion: map[primitive.ObjectID][]models.Option{question.ID: {option}},
		},
	}
	return svc, quiz, question, option
}

func TestUpdateReplacesQuestionSet(t *testing.T) {
	svc, quiz, old, _ := seededQuizService(0)

	if _, err := svc.Update(context.Background(), quiz.ID, validInput()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	current, _ := svc.Questions.FindByQuiz(context.Background(), quiz.ID)
	if len(current) != 2 {
		t.Fatalf("expected 2 questions after update, got %d", len(current))
	}
	for _, q := range current {
		if q.ID == old.ID {
			t.Error("old question should have been replaced")
		}
	}
}

func TestUpdateRestoresQuestionsOnFailure(t *testing.T) {
	svc, quiz, question, option := seededQuizService(1)

	if _, err := svc.Update(context.Background(), quiz.ID, validInput()); err == nil {
		t.Fatal("expected the storage failure to surface")
	}

	restored, _ := svc.Questions.FindByQuiz(context.Background(), quiz.ID)
	if len(restored) != 1 || restored[0].ID != question.ID {
		t.Fatalf("expected the original question restored, got %+v", restored)
	}
	byQuestion, _ := svc.Options.FindByQuestions(context.Background(), []primitive.ObjectID{question.ID})
	if len(byQuestion[question.ID]) != 1 || byQuestion[question.ID][0].ID != option.ID {
		t.Errorf("expected the original options restored, got %+v", byQuestion[question.ID])
	}
}
