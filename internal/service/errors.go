package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidCategory      = errors.New("unknown category")
	ErrSkillInactive        = errors.New("skill is no longer active")
	ErrSelfRequest          = errors.New("cannot request your own skill")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrSelfMessage          = errors.New("cannot message yourself")
	ErrEmptyContent         = errors.New("content is required")
	ErrSelfRating           = errors.New("cannot rate yourself")
	ErrExchangeNotCompleted = errors.New("rating requires a completed exchange")
	ErrRatingTarget         = errors.New("rated user is not the other participant of the exchange")
	ErrAlreadyRated         = errors.New("exchange already rated")
)

// notFound maps a missing row to ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
