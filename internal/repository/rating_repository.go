package repository

import (
	"context"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"gorm.io/gorm"
)

type RatingSummary struct {
	Average float64
	Count   int64
}

type RatingRepository interface {
	ListByRatedUser(ctx context.Context, userID string) ([]model.Rating, error)
	Create(ctx context.Context, rt *model.Rating, notify *model.Notification) error
	Summary(ctx context.Context, userID string) (RatingSummary, error)
	SetDB(db *gorm.DB)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *ratingRepository) ListByRatedUser(ctx context.Context, userID string) ([]model.Rating, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Rating
	if err := r.db.WithContext(ctx).
		Preload("Rater").
		Where("rated_user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Create relies on uk_ratings_rater_exchange to reject a second review of the same exchange.
func (r *ratingRepository) Create(ctx context.Context, rt *model.Rating, notify *model.Notification) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Rater", "RatedUser").Create(rt).Error; err != nil {
			return err
		}
		if notify == nil {
			return nil
		}
		notify.ExchangeRequestID = rt.ExchangeRequestID
		notify.RatingID = &rt.ID
		return tx.Create(notify).Error
	})
}

// Summary aggregates on read; Average is 0 when the user has no ratings.
func (r *ratingRepository) Summary(ctx context.Context, userID string) (RatingSummary, error) {
	if r.db == nil {
		return RatingSummary{}, ErrDBNotReady
	}
	var out RatingSummary
	if err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("rated_user_id = ?", userID).
		Scan(&out).Error; err != nil {
		return RatingSummary{}, err
	}
	return out, nil
}
