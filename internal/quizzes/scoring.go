package quizzes

import (
	"github.com/google/uuid"

	"festx/internal/database"
)

type AnswerResult struct {
	QuestionID     uuid.UUID `json:"question_id"`
	SelectedOption int       `json:"selected_option"`
	IsCorrect      bool      `json:"is_correct"`
}

type ScoreSummary struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     float64        `json:"percentage"`
	Answers        []AnswerResult `json:"answers"`
}

// ScoreAnswers grades a submission against the quiz questions. Questions the
// submitter skipped count as wrong; answers to unknown question ids are
// ignored. Option indices are zero-based.
func ScoreAnswers(questions []database.QuizQuestion, answers map[uuid.UUID]int) ScoreSummary {
	summary := ScoreSummary{
		TotalQuestions: len(questions),
		Answers:        make([]AnswerResult, 0, len(questions)),
	}
	for _, q := range questions {
		selected, answered := answers[q.ID]
		if !answered {
			selected = -1
		}
		correct := answered && selected == q.CorrectOption
		if correct {
			summary.Score++
		}
		summary.Answers = append(summary.Answers, AnswerResult{
			QuestionID:     q.ID,
			SelectedOption: selected,
			IsCorrect:      correct,
		})
	}
	if summary.TotalQuestions > 0 {
		summary.Percentage = float64(summary.Score) / float64(summary.TotalQuestions) * 100
	}
	return summary
}
