package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"festx/infrastructure"
	"festx/internal/database"
)

const feedLimit = 20

type CreateRequest struct {
	Title   string     `json:"title"`
	Message string     `json:"message"`
	UserID  *uuid.UUID `json:"user_id,omitempty"`
}

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{db: db}
}

// Feed returns the user's notifications together with broadcasts, newest
// first, capped at the last 20.
func (s *Service) Feed(ctx context.Context, userID uuid.UUID) ([]database.Notification, error) {
	var list []database.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("created_at DESC").
		Limit(feedLimit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return list, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&database.Notification{}).
		Where("(user_id = ? OR user_id IS NULL) AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flips one notification to read. Only the addressee (or anyone,
// for a broadcast) can mark it.
func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n database.Notification
		err := tx.Where("id = ? AND (user_id = ? OR user_id IS NULL)", id, userID).
			First(&n).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notification not found", infrastructure.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if n.IsRead {
			return nil
		}
		return tx.Model(&n).Update("is_read", true).Error
	})
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Model(&database.Notification{}).
		Where("(user_id = ? OR user_id IS NULL) AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Create stores a notification. A nil UserID makes it a broadcast visible to
// every user.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*database.Notification, error) {
	if req.Title == "" || req.Message == "" {
		return nil, fmt.Errorf("%w: title and message are required", infrastructure.ErrInvalidInput)
	}

	n := &database.Notification{
		ID:        uuid.New(),
		UserID:    req.UserID,
		Title:     req.Title,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}
