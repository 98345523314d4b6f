package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	"gorm.io/gorm"
)

type RatingInput struct {
	RatedUserID       string
	Rating            int
	Review            *string
	ExchangeRequestID *uint64
}

type RatingService interface {
	ListForUser(ctx context.Context, userID string) ([]model.Rating, error)
	Summary(ctx context.Context, userID string) (repository.RatingSummary, error)
	Create(ctx context.Context, uid string, in RatingInput) (*model.Rating, error)
}

type ratingService struct {
	ratings  repository.RatingRepository
	requests repository.ExchangeRequestRepository
}

func NewRatingService(ratings repository.RatingRepository, requests repository.ExchangeRequestRepository) RatingService {
	return &ratingService{ratings: ratings, requests: requests}
}

// RoundRating rounds an average to two decimals, half away from zero.
func RoundRating(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *ratingService) ListForUser(ctx context.Context, userID string) ([]model.Rating, error) {
	return s.ratings.ListByRatedUser(ctx, userID)
}

func (s *ratingService) Summary(ctx context.Context, userID string) (repository.RatingSummary, error) {
	sum, err := s.ratings.Summary(ctx, userID)
	if err != nil {
		return repository.RatingSummary{}, err
	}
	sum.Average = RoundRating(sum.Average)
	return sum, nil
}

// Create records a review of the other participant of a completed exchange. One review per rater
// per exchange is guaranteed by a unique index rather than a prior lookup.
func (s *ratingService) Create(ctx context.Context, uid string, in RatingInput) (*model.Rating, error) {
	if in.Rating < model.MinRating || in.Rating > model.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, model.MinRating, model.MaxRating)
	}
	rated := strings.TrimSpace(in.RatedUserID)
	if rated == "" {
		return nil, fmt.Errorf("%w: ratedUserId is required", ErrInvalidInput)
	}
	if rated == uid {
		return nil, ErrSelfRating
	}
	if in.ExchangeRequestID == nil {
		return nil, ErrExchangeNotCompleted
	}
	req, err := s.requests.FindByID(ctx, *in.ExchangeRequestID)
	if err != nil {
		return nil, notFound(err)
	}
	if !req.IsParticipant(uid) {
		return nil, ErrNotFound
	}
	if req.Status != model.ExchangeStatusCompleted {
		return nil, ErrExchangeNotCompleted
	}
	if req.Counterpart(uid) != rated {
		return nil, ErrRatingTarget
	}

	rt := &model.Rating{
		RaterID:           uid,
		RatedUserID:       rated,
		ExchangeRequestID: in.ExchangeRequestID,
		Rating:            in.Rating,
		Review:            cleanOptional(in.Review),
	}
	n := &model.Notification{
		UserID: rated,
		Type:   model.NotificationRatingReceived,
		Title:  "New rating",
		Body:   fmt.Sprintf("You received %d/%d for an exchange", in.Rating, model.MaxRating),
	}
	if err := s.ratings.Create(ctx, rt, n); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}
	return rt, nil
}
