package repository

import (
	"context"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"gorm.io/gorm"
)

const (
	defaultNotificationPage = 20
	maxNotificationPage     = 50
)

// NotificationRepository reads and acknowledges notifications. Rows are written by the exchange and
// rating repositories inside their own transactions.
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, id uint64) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	SetDB(db *gorm.DB)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *notificationRepository) unread(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if limit <= 0 || limit > maxNotificationPage {
		limit = defaultNotificationPage
	}
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = r.unread(ctx, userID)
	}
	var list []model.Notification
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	if err := r.unread(ctx, userID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// MarkRead acknowledges one notification of userID. Zero rows means it is missing, foreign or already read.
func (r *notificationRepository) MarkRead(ctx context.Context, userID string, id uint64) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.unread(ctx, userID).Where("id = ?", id).Update("read_at", r.db.NowFunc())
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.unread(ctx, userID).Update("read_at", r.db.NowFunc())
	return res.RowsAffected, res.Error
}
