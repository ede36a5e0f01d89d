package quizzes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"festx/infrastructure"
	"festx/internal/database"
)

// Store is the persistence surface for quizzes. Transact runs fn against a
// store bound to a single transaction.
type Store interface {
	Transact(ctx context.Context, fn func(Store) error) error
	ActiveQuizzes(ctx context.Context) ([]database.Quiz, error)
	QuizWithQuestions(ctx context.Context, id uuid.UUID) (*database.Quiz, error)
	HasSubmission(ctx context.Context, quizID, userID uuid.UUID) (bool, error)
	SaveAnswer(ctx context.Context, answer *database.QuizAnswer) error
	SaveSubmission(ctx context.Context, submission *database.QuizSubmission) error
	UserResults(ctx context.Context, userID uuid.UUID) ([]ResultEntry, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *database.Database) Store {
	return &gormStore{db: db.DB}
}

func (s *gormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) ActiveQuizzes(ctx context.Context) ([]database.Quiz, error) {
	var list []database.Quiz
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return list, nil
}

// QuizWithQuestions only returns active quizzes; an inactive quiz reads the
// same as a missing one.
func (s *gormStore) QuizWithQuestions(ctx context.Context, id uuid.UUID) (*database.Quiz, error) {
	var quiz database.Quiz
	err := s.db.WithContext(ctx).
		Preload("Questions").
		First(&quiz, "id = ? AND is_active = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: quiz not found", infrastructure.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz: %w", err)
	}
	return &quiz, nil
}

func (s *gormStore) HasSubmission(ctx context.Context, quizID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&database.QuizSubmission{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check submission: %w", err)
	}
	return count > 0, nil
}

func (s *gormStore) SaveAnswer(ctx context.Context, answer *database.QuizAnswer) error {
	return s.db.WithContext(ctx).Create(answer).Error
}

func (s *gormStore) SaveSubmission(ctx context.Context, submission *database.QuizSubmission) error {
	return s.db.WithContext(ctx).Create(submission).Error
}

func (s *gormStore) UserResults(ctx context.Context, userID uuid.UUID) ([]ResultEntry, error) {
	var entries []ResultEntry
	err := s.db.WithContext(ctx).
		Table("quiz_submissions qs").
		Select("qs.quiz_id, q.title AS quiz_title, qs.score, qs.total_questions, qs.percentage, qs.created_at AS submitted_at").
		Joins("JOIN quizzes q ON qs.quiz_id = q.id").
		Where("qs.user_id = ?", userID).
		Order("qs.created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz results: %w", err)
	}
	return entries, nil
}
