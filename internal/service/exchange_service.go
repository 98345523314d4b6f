package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
)

type ExchangeInput struct {
	SkillID       uint64
	Message       *string
	ScheduledDate *time.Time
}

type ExchangeService interface {
	List(ctx context.Context, uid, status string) ([]model.ExchangeRequest, error)
	History(ctx context.Context, userID string) ([]model.ExchangeRequest, error)
	Get(ctx context.Context, id uint64, uid string) (*model.ExchangeRequest, error)
	Create(ctx context.Context, uid string, in ExchangeInput) (*model.ExchangeRequest, error)
	UpdateStatus(ctx context.Context, id uint64, uid, status string) (*model.ExchangeRequest, error)
	Withdraw(ctx context.Context, id uint64, uid string) error
}

type exchangeService struct {
	requests repository.ExchangeRequestRepository
	skills   repository.SkillRepository
	users    repository.UserRepository
}

func NewExchangeService(requests repository.ExchangeRequestRepository, skills repository.SkillRepository, users repository.UserRepository) ExchangeService {
	return &exchangeService{requests: requests, skills: skills, users: users}
}

func parseStatus(v string) (model.ExchangeStatus, error) {
	switch st := model.ExchangeStatus(strings.ToLower(strings.TrimSpace(v))); st {
	case model.ExchangeStatusPending, model.ExchangeStatusAccepted, model.ExchangeStatusRejected, model.ExchangeStatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: status must be pending, accepted, rejected or completed", ErrInvalidInput)
}

func (s *exchangeService) List(ctx context.Context, uid, status string) ([]model.ExchangeRequest, error) {
	var filter *model.ExchangeStatus
	if status != "" {
		st, err := parseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = &st
	}
	return s.requests.ListByParticipant(ctx, uid, filter)
}

// History is the public record of a user's completed exchanges, as requester or skill owner.
func (s *exchangeService) History(ctx context.Context, userID string) ([]model.ExchangeRequest, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, notFound(err)
	}
	completed := model.ExchangeStatusCompleted
	return s.requests.ListByParticipant(ctx, userID, &completed)
}

func (s *exchangeService) find(ctx context.Context, id uint64) (*model.ExchangeRequest, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return req, nil
}

func (s *exchangeService) Get(ctx context.Context, id uint64, uid string) (*model.ExchangeRequest, error) {
	req, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.IsParticipant(uid) {
		return nil, ErrForbidden
	}
	return req, nil
}

func (s *exchangeService) displayName(ctx context.Context, uid string) string {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil || u.DisplayName() == "" {
		return "Someone"
	}
	return u.DisplayName()
}

// Create opens a pending request on an active skill owned by someone else.
func (s *exchangeService) Create(ctx context.Context, uid string, in ExchangeInput) (*model.ExchangeRequest, error) {
	sk, err := s.skills.FindByID(ctx, in.SkillID)
	if err != nil {
		return nil, notFound(err)
	}
	if !sk.IsActive {
		return nil, ErrSkillInactive
	}
	if sk.UserID == uid {
		return nil, ErrSelfRequest
	}

	req := &model.ExchangeRequest{
		RequesterID:   uid,
		SkillID:       sk.ID,
		Message:       cleanOptional(in.Message),
		ScheduledDate: in.ScheduledDate,
	}
	n := &model.Notification{
		UserID: sk.UserID,
		Type:   model.NotificationExchangeRequested,
		Title:  "New exchange request",
		Body:   fmt.Sprintf("%s is interested in %q", s.displayName(ctx, uid), sk.Title),
	}
	if err := s.requests.Create(ctx, req, n); err != nil {
		return nil, err
	}
	return s.find(ctx, req.ID)
}

// UpdateStatus enforces pending -> accepted|rejected by the skill owner and
// accepted -> completed by either participant.
func (s *exchangeService) UpdateStatus(ctx context.Context, id uint64, uid, status string) (*model.ExchangeRequest, error) {
	next, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	req, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.IsParticipant(uid) {
		return nil, ErrForbidden
	}
	if (next == model.ExchangeStatusAccepted || next == model.ExchangeStatusRejected) && req.OwnerID() != uid {
		return nil, ErrForbidden
	}
	if !req.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, next)
	}

	title := ""
	if req.Skill != nil {
		title = req.Skill.Title
	}
	n := &model.Notification{
		UserID: req.Counterpart(uid),
		Type:   model.NotificationExchangeStatus,
		Title:  "Exchange request " + string(next),
		Body:   fmt.Sprintf("%s marked the exchange for %q as %s", s.displayName(ctx, uid), title, next),
	}
	changed, err := s.requests.TransitionStatus(ctx, id, req.Status, next, n)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, fmt.Errorf("%w: request is no longer %s", ErrInvalidTransition, req.Status)
	}
	return s.find(ctx, id)
}

// Withdraw lets the requester delete a request that nobody has answered yet.
func (s *exchangeService) Withdraw(ctx context.Context, id uint64, uid string) error {
	req, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if req.RequesterID != uid {
		return ErrForbidden
	}
	if req.Status != model.ExchangeStatusPending {
		return fmt.Errorf("%w: only pending requests can be withdrawn", ErrInvalidTransition)
	}
	n, err := s.requests.DeleteIfPending(ctx, id, uid)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: only pending requests can be withdrawn", ErrInvalidTransition)
	}
	return nil
}
