package quizzes

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festx/infrastructure"
	"festx/internal/database"
)

type fakeStore struct {
	quizzes     map[uuid.UUID]*database.Quiz
	answers     []*database.QuizAnswer
	submissions []*database.QuizSubmission
}

func newFakeStore() *fakeStore {
	return &fakeStore{quizzes: make(map[uuid.UUID]*database.Quiz)}
}

func (f *fakeStore) addQuiz(title string, correctOptions ...int) *database.Quiz {
	quiz := &database.Quiz{ID: uuid.New(), Title: title, IsActive: true}
	for i, correct := range correctOptions {
		quiz.Questions = append(quiz.Questions, database.QuizQuestion{
			ID:            uuid.New(),
			QuizID:        quiz.ID,
			QuestionText:  fmt.Sprintf("Question %d", i+1),
			Options:       pq.StringArray{"A", "B", "C", "D"},
			CorrectOption: correct,
		})
	}
	f.quizzes[quiz.ID] = quiz
	return quiz
}

func (f *fakeStore) Transact(ctx context.Context, fn func(Store) error) error {
	return fn(f)
}

func (f *fakeStore) ActiveQuizzes(ctx context.Context) ([]database.Quiz, error) {
	var list []database.Quiz
	for _, q := range f.quizzes {
		if q.IsActive {
			list = append(list, *q)
		}
	}
	return list, nil
}

func (f *fakeStore) QuizWithQuestions(ctx context.Context, id uuid.UUID) (*database.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok || !quiz.IsActive {
		return nil, fmt.Errorf("%w: quiz not found", infrastructure.ErrNotFound)
	}
	return quiz, nil
}

func (f *fakeStore) HasSubmission(ctx context.Context, quizID, userID uuid.UUID) (bool, error) {
	for _, s := range f.submissions {
		if s.QuizID == quizID && s.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) SaveAnswer(ctx context.Context, answer *database.QuizAnswer) error {
	f.answers = append(f.answers, answer)
	return nil
}

func (f *fakeStore) SaveSubmission(ctx context.Context, submission *database.QuizSubmission) error {
	f.submissions = append(f.submissions, submission)
	return nil
}

func (f *fakeStore) UserResults(ctx context.Context, userID uuid.UUID) ([]ResultEntry, error) {
	var entries []ResultEntry
	for _, s := range f.submissions {
		if s.UserID != userID {
			continue
		}
		entries = append(entries, ResultEntry{
			QuizID:         s.QuizID,
			QuizTitle:      f.quizzes[s.QuizID].Title,
			Score:          s.Score,
			TotalQuestions: s.TotalQuestions,
			Percentage:     s.Percentage,
			SubmittedAt:    s.CreatedAt,
		})
	}
	return entries, nil
}

func TestSubmitRecordsAnswersAndSubmission(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	quiz := store.addQuiz("Tech Trivia", 1, 2, 0)
	userID := uuid.New()

	answers := map[uuid.UUID]int{
		quiz.Questions[0].ID: 1,
		quiz.Questions[1].ID: 3,
	}
	summary, err := svc.Submit(context.Background(), quiz.ID, userID, &SubmitRequest{Answers: answers})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Score)
	assert.Equal(t, 3, summary.TotalQuestions)
	assert.InDelta(t, 33.33, summary.Percentage, 0.01)

	assert.Len(t, store.answers, 3)
	require.Len(t, store.submissions, 1)
	assert.Equal(t, userID, store.submissions[0].UserID)
	assert.Equal(t, 1, store.submissions[0].Score)

	results, err := svc.UserResults(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Tech Trivia", results[0].QuizTitle)
}

func TestSubmitTwiceIsDuplicate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	quiz := store.addQuiz("Tech Trivia", 0)
	userID := uuid.New()
	answers := map[uuid.UUID]int{quiz.Questions[0].ID: 0}

	_, err := svc.Submit(context.Background(), quiz.ID, userID, &SubmitRequest{Answers: answers})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), quiz.ID, userID, &SubmitRequest{Answers: answers})
	assert.ErrorIs(t, err, infrastructure.ErrDuplicateIdentity)

	assert.Len(t, store.submissions, 1)
	assert.Len(t, store.answers, 1)
}

func TestSubmitUnknownQuiz(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), &SubmitRequest{
		Answers: map[uuid.UUID]int{uuid.New(): 0},
	})
	assert.ErrorIs(t, err, infrastructure.ErrNotFound)
}

func TestSubmitInactiveQuiz(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	quiz := store.addQuiz("Retired", 0)
	quiz.IsActive = false

	_, err := svc.Submit(context.Background(), quiz.ID, uuid.New(), &SubmitRequest{
		Answers: map[uuid.UUID]int{quiz.Questions[0].ID: 0},
	})
	assert.ErrorIs(t, err, infrastructure.ErrNotFound)
}

func TestSubmitWithoutAnswers(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	quiz := store.addQuiz("Tech Trivia", 0)

	_, err := svc.Submit(context.Background(), quiz.ID, uuid.New(), &SubmitRequest{})
	assert.ErrorIs(t, err, infrastructure.ErrInvalidInput)
}

// The participant view of a quiz must not carry the correct option, not even
// as a zero-valued JSON field.
func TestGetByIDHidesCorrectOption(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	quiz := store.addQuiz("Tech Trivia", 2)

	detail, err := svc.GetByID(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, detail.Questions, 1)
	assert.Equal(t, quiz.Questions[0].QuestionText, detail.Questions[0].QuestionText)

	payload, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "correct")
}
