package service

import (
	"context"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
)

type NotificationPage struct {
	Items       []model.Notification
	UnreadCount int64
}

type NotificationService interface {
	List(ctx context.Context, uid string, unreadOnly bool, limit int) (*NotificationPage, error)
	MarkRead(ctx context.Context, uid string, id uint64) (int64, error)
	MarkAllRead(ctx context.Context, uid string) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, uid string, unreadOnly bool, limit int) (*NotificationPage, error) {
	items, err := s.repo.ListByUser(ctx, uid, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.CountUnread(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{Items: items, UnreadCount: n}, nil
}

// MarkRead is idempotent: acknowledging an already read notification reports 0 updated.
func (s *notificationService) MarkRead(ctx context.Context, uid string, id uint64) (int64, error) {
	return s.repo.MarkRead(ctx, uid, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, uid string) (int64, error) {
	return s.repo.MarkAllRead(ctx, uid)
}
