package service

import (
	"testing"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newChoiceQuestion(points int) (models.Question, []models.Option) {
	q := models.Question{
		ID:     primitive.NewObjectID(),
		Text:   "Which library renders the UI?",
		Type:   models.QuestionMultipleChoice,
		Points: points,
	}
	options := []models.Option{
		{ID: primitive.NewObjectID(), QuestionID: q.ID, Text: "Angular", IsCorrect: false},
		{ID: primitive.NewObjectID(), QuestionID: q.ID, Text: "React", IsCorrect: true},
	}
	return q, options
}

func TestScoreMultipleChoice(t *testing.T) {
	question, options := newChoiceQuestion(10)
	wrong, correct := options[0], options[1]

	testCases := []struct {
		name        string
		selected    []string
		wantCorrect bool
		wantPoints  int
	}{
		{"correct option", []string{correct.ID.Hex()}, true, 10},
		{"wrong option", []string{wrong.ID.Hex()}, false, 0},
		{"both options", []string{wrong.ID.Hex(), correct.ID.Hex()}, false, 0},
		{"no options", []string{}, false, 0},
		{"unparseable option id", []string{"not-a-hex-id"}, false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(
				[]models.Question{question},
				map[primitive.ObjectID][]models.Option{question.ID: options},
				[]AnswerInput{{QuestionID: question.ID.Hex(), SelectedOptionIDs: tc.selected}},
			)

			if result.TotalPoints != 10 {
				t.Errorf("expected total 10, got %d", result.TotalPoints)
			}
			if len(result.Answers) != 1 {
				t.Fatalf("expected 1 graded answer, got %d", len(result.Answers))
			}
			if result.Answers[0].IsCorrect != tc.wantCorrect {
				t.Errorf("expected IsCorrect=%v, got %v", tc.wantCorrect, result.Answers[0].IsCorrect)
			}
			if result.Answers[0].PointsAwarded != tc.wantPoints {
				t.Errorf("expected %d points awarded, got %d", tc.wantPoints, result.Answers[0].PointsAwarded)
			}
			if result.Score != tc.wantPoints {
				t.Errorf("expected score %d, got %d", tc.wantPoints, result.Score)
			}
		})
	}
}

func TestScoreShortAnswer(t *testing.T) {
	question := models.Question{
		ID:                primitive.NewObjectID(),
		Text:              "Name the library",
		Type:              models.QuestionShortAnswer,
		Points:            5,
		CorrectAnswerText: "React",
	}

	testCases := []struct {
		name        string
		submitted   string
		wantCorrect bool
	}{
		{"exact match", "React", true},
		{"lowercase", "react", true},
		{"surrounding whitespace", " React ", true},
		{"different answer", "Reactjs", false},
		{"empty answer", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(
				[]models.Question{question},
				nil,
				[]AnswerInput{{QuestionID: question.ID.Hex(), SubmittedAnswerText: tc.submitted}},
			)

			if result.Answers[0].IsCorrect != tc.wantCorrect {
				t.Errorf("submitted %q: expected IsCorrect=%v, got %v", tc.submitted, tc.wantCorrect, result.Answers[0].IsCorrect)
			}
			wantPoints := 0
			if tc.wantCorrect {
				wantPoints = 5
			}
			if result.Answers[0].PointsAwarded != wantPoints {
				t.Errorf("submitted %q: expected %d points, got %d", tc.submitted, wantPoints, result.Answers[0].PointsAwarded)
			}
		})
	}
}

func TestScoreUnansweredQuestionsStillGraded(t *testing.T) {
	answered, answeredOptions := newChoiceQuestion(10)
	unanswered := models.Question{
		ID:                primitive.NewObjectID(),
		Text:              "Left blank",
		Type:              models.QuestionShortAnswer,
		Points:            5,
		CorrectAnswerText: "anything",
	}

	correct := answeredOptions[1]
	result := Score(
		[]models.Question{answered, unanswered},
		map[primitive.ObjectID][]models.Option{answered.ID: answeredOptions},
		[]AnswerInput{{QuestionID: answered.ID.Hex(), SelectedOptionIDs: []string{correct.ID.Hex()}}},
	)

	if len(result.Answers) != 2 {
		t.Fatalf("expected per-question detail for every question, got %d entries", len(result.Answers))
	}
	if result.TotalPoints != 15 {
		t.Errorf("expected total 15 including the unanswered question, got %d", result.TotalPoints)
	}
	if result.Score != 10 {
		t.Errorf("expected score 10, got %d", result.Score)
	}

	blank := result.Answers[1]
	if blank.QuestionID != unanswered.ID {
		t.Fatalf("expected second entry to cover the unanswered question")
	}
	if blank.IsCorrect || blank.PointsAwarded != 0 {
		t.Errorf("unanswered question must grade incorrect with 0 points, got correct=%v points=%d", blank.IsCorrect, blank.PointsAwarded)
	}
}

func TestPassed(t *testing.T) {
	testCases := []struct {
		name           string
		score          int
		total          int
		passPercentage int
		want           bool
	}{
		{"above threshold", 7, 10, 70, true},
		{"exactly threshold", 7, 10, 70, true},
		{"below threshold", 6, 10, 70, false},
		{"zero threshold always passes", 0, 10, 0, true},
		{"zero total never passes", 0, 0, 0, false},
		{"zero total with threshold", 0, 0, 70, false},
		{"full marks", 10, 10, 100, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Passed(tc.score, tc.total, tc.passPercentage); got != tc.want {
				t.Errorf("Passed(%d, %d, %d) = %v, want %v", tc.score, tc.total, tc.passPercentage, got, tc.want)
			}
		})
	}
}
