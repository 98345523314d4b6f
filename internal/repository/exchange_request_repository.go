package repository

import (
	"context"
	"time"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"gorm.io/gorm"
)

type ExchangeRequestRepository interface {
	ListByParticipant(ctx context.Context, uid string, status *model.ExchangeStatus) ([]model.ExchangeRequest, error)
	FindByID(ctx context.Context, id uint64) (*model.ExchangeRequest, error)
	Create(ctx context.Context, req *model.ExchangeRequest, notify *model.Notification) error
	TransitionStatus(ctx context.Context, id uint64, from, to model.ExchangeStatus, notify *model.Notification) (bool, error)
	DeleteIfPending(ctx context.Context, id uint64, requesterID string) (int64, error)
	SetDB(db *gorm.DB)
}

type exchangeRequestRepository struct {
	db *gorm.DB
}

func NewExchangeRequestRepository(db *gorm.DB) ExchangeRequestRepository {
	return &exchangeRequestRepository{db: db}
}

func (r *exchangeRequestRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *exchangeRequestRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Skill").
		Preload("Skill.User").
		Preload("Skill.Category")
}

// ListByParticipant returns requests the user sent or received for one of their skills, newest first.
func (r *exchangeRequestRepository) ListByParticipant(ctx context.Context, uid string, status *model.ExchangeStatus) ([]model.ExchangeRequest, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.withRelations(ctx).
		Joins("JOIN skills ON skills.id = skill_exchange_requests.skill_id").
		Where("skill_exchange_requests.requester_id = ? OR skills.user_id = ?", uid, uid)
	if status != nil {
		q = q.Where("skill_exchange_requests.status = ?", *status)
	}
	var list []model.ExchangeRequest
	if err := q.
		Order("skill_exchange_requests.created_at DESC").
		Order("skill_exchange_requests.id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *exchangeRequestRepository) FindByID(ctx context.Context, id uint64) (*model.ExchangeRequest, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var req model.ExchangeRequest
	if err := r.withRelations(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// Create stores req as pending and, in the same transaction, the notification for the skill owner.
func (r *exchangeRequestRepository) Create(ctx context.Context, req *model.ExchangeRequest, notify *model.Notification) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	req.Status = model.ExchangeStatusPending
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Requester", "Skill").Create(req).Error; err != nil {
			return err
		}
		if notify == nil {
			return nil
		}
		notify.ExchangeRequestID = &req.ID
		return tx.Create(notify).Error
	})
}

// TransitionStatus moves the request from one status to another only if it is still in from.
// It reports false when another writer got there first or the request is gone.
func (r *exchangeRequestRepository) TransitionStatus(ctx context.Context, id uint64, from, to model.ExchangeStatus, notify *model.Notification) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{"status": to}
		if to == model.ExchangeStatusCompleted {
			fields["completed_at"] = time.Now().UTC()
		}
		res := tx.Model(&model.ExchangeRequest{}).
			Where("id = ? AND status = ?", id, from).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		if notify == nil {
			return nil
		}
		notify.ExchangeRequestID = &id
		return tx.Create(notify).Error
	})
	return changed, err
}

func (r *exchangeRequestRepository) DeleteIfPending(ctx context.Context, id uint64, requesterID string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND requester_id = ? AND status = ?", id, requesterID, model.ExchangeStatusPending).
		Delete(&model.ExchangeRequest{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
