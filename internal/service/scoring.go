package service

import (
	"strings"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerInput is one submitted answer as it arrives from the client. Ids stay
// strings here; anything unparseable simply fails to match and grades as
// incorrect rather than failing the whole submission.
type AnswerInput struct {
	QuestionID          string   `json:"question_id" binding:"required"`
	SelectedOptionIDs   []string `json:"selected_option_ids"`
	SubmittedAnswerText string   `json:"submitted_answer_text"`
}

// ScoreResult is the graded outcome of one answer set against one quiz.
type ScoreResult struct {
	Score       int
	TotalPoints int
	Answers     []models.SubmittedAnswer
}

// Score grades a set of submitted answers against a quiz's questions and
// options. It is pure: every question contributes an entry to Answers whether
// or not it was answered, and a question absent from the submission scores
// zero. Choice questions are correct iff exactly one option was selected and
// it is the option flagged correct; short answers are an exact match after
// trimming and lowercasing.
func Score(questions []models.Question, optionsByQuestion map[primitive.ObjectID][]models.Option, answers []AnswerInput) ScoreResult {
	byQuestion := make(map[string]*AnswerInput, len(answers))
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}

	result := ScoreResult{Answers: make([]models.SubmittedAnswer, 0, len(questions))}
	for _, question := range questions {
		result.TotalPoints += question.Points

		answer := byQuestion[question.ID.Hex()]
		graded := models.SubmittedAnswer{
			QuestionID:        question.ID,
			QuestionType:      question.Type,
			SelectedOptionIDs: []primitive.ObjectID{},
		}

		if answer != nil {
			graded.SubmittedAnswerText = answer.SubmittedAnswerText
			graded.SelectedOptionIDs = parseObjectIDs(answer.SelectedOptionIDs)

			switch {
			case models.HasOptions(question.Type):
				correct := correctOption(optionsByQuestion[question.ID])
				// Zero or multiple selections are incorrect by definition.
				if correct != nil && len(answer.SelectedOptionIDs) == 1 &&
					answer.SelectedOptionIDs[0] == correct.ID.Hex() {
					graded.IsCorrect = true
				}
			case question.Type == models.QuestionShortAnswer:
				graded.IsCorrect = normalizeAnswer(answer.SubmittedAnswerText) != "" &&
					normalizeAnswer(answer.SubmittedAnswerText) == normalizeAnswer(question.CorrectAnswerText)
			}
			if graded.IsCorrect {
				graded.PointsAwarded = question.Points
			}
		}

		result.Score += graded.PointsAwarded
		result.Answers = append(result.Answers, graded)
	}
	return result
}

// Passed applies the quiz pass threshold. A quiz with no possible points never
// passes; the guard doubles as the divide-by-zero check.
func Passed(score, totalPoints, passPercentage int) bool {
	if totalPoints <= 0 {
		return false
	}
	return float64(score)/float64(totalPoints)*100 >= float64(passPercentage)
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func correctOption(options []models.Option) *models.Option {
	for i := range options {
		if options[i].IsCorrect {
			return &options[i]
		}
	}
	return nil
}

func parseObjectIDs(ids []string) []primitive.ObjectID {
	parsed := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			parsed = append(parsed, oid)
		}
	}
	return parsed
}
