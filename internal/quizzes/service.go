package quizzes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"festx/infrastructure"
	"festx/internal/database"
)

// QuestionView is a quiz question as shown to participants, without the
// correct option.
type QuestionView struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	Options      []string  `json:"options"`
}

type QuizDetail struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []QuestionView `json:"questions"`
}

type SubmitRequest struct {
	Answers map[uuid.UUID]int `json:"answers"`
}

type ResultEntry struct {
	QuizID         uuid.UUID `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]database.Quiz, error) {
	return s.store.ActiveQuizzes(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*QuizDetail, error) {
	quiz, err := s.store.QuizWithQuestions(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &QuizDetail{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   make([]QuestionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		detail.Questions = append(detail.Questions, QuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
		})
	}
	return detail, nil
}

// Submit grades the answers and records both the per-question rows and the
// overall submission. A user can submit a quiz only once.
func (s *Service) Submit(ctx context.Context, quizID, userID uuid.UUID, req *SubmitRequest) (*ScoreSummary, error) {
	if len(req.Answers) == 0 {
		return nil, fmt.Errorf("%w: answers are required", infrastructure.ErrInvalidInput)
	}

	var summary ScoreSummary
	err := s.store.Transact(ctx, func(st Store) error {
		quiz, err := st.QuizWithQuestions(ctx, quizID)
		if err != nil {
			return err
		}

		submitted, err := st.HasSubmission(ctx, quizID, userID)
		if err != nil {
			return err
		}
		if submitted {
			return fmt.Errorf("%w: quiz already submitted", infrastructure.ErrDuplicateIdentity)
		}

		summary = ScoreAnswers(quiz.Questions, req.Answers)

		now := time.Now()
		for _, a := range summary.Answers {
			row := database.QuizAnswer{
				QuizID:         quizID,
				QuestionID:     a.QuestionID,
				UserID:         userID,
				SelectedOption: a.SelectedOption,
				IsCorrect:      a.IsCorrect,
				CreatedAt:      now,
			}
			if err := st.SaveAnswer(ctx, &row); err != nil {
				return err
			}
		}

		submission := database.QuizSubmission{
			ID:             uuid.New(),
			QuizID:         quizID,
			UserID:         userID,
			Score:          summary.Score,
			TotalQuestions: summary.TotalQuestions,
			Percentage:     summary.Percentage,
			CreatedAt:      now,
		}
		return st.SaveSubmission(ctx, &submission)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Service) UserResults(ctx context.Context, userID uuid.UUID) ([]ResultEntry, error) {
	return s.store.UserResults(ctx, userID)
}
