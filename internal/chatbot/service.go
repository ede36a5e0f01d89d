package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"festx/infrastructure"
	"festx/internal/database"
)

const historyLimit = 20

type QueryResult struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoryEntry struct {
	ID           int64      `json:"id"`
	QueryText    string     `json:"query_text"`
	ResponseText *string    `json:"response_text"`
	CreatedAt    time.Time  `json:"created_at"`
	RespondedAt  *time.Time `json:"responded_at"`
}

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{db: db}
}

// Query answers the question. The exchange is logged only for authenticated
// users; anonymous visitors still get an answer.
func (s *Service) Query(ctx context.Context, userID *uuid.UUID, query string) (*QueryResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", infrastructure.ErrInvalidInput)
	}

	answer := Respond(query)
	now := time.Now()

	if userID != nil {
		row := database.ChatbotQuery{
			UserID:       *userID,
			QueryText:    query,
			ResponseText: &answer,
			CreatedAt:    now,
			RespondedAt:  &now,
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, fmt.Errorf("failed to log chatbot query: %w", err)
		}
	}

	return &QueryResult{Query: query, Response: answer, Timestamp: now}, nil
}

func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := s.db.WithContext(ctx).
		Model(&database.ChatbotQuery{}).
		Select("id, query_text, response_text, created_at, responded_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(historyLimit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat history: %w", err)
	}
	return entries, nil
}
