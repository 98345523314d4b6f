package service

import (
	"context"
	"testing"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exchangeFixture struct {
	svc      ExchangeService
	skills   *fakeSkills
	requests *fakeRequests
}

// owner teaches skill 1 (active) and skill 2 (inactive); learner is the requester.
func newExchangeFixture() *exchangeFixture {
	first := "Olive"
	skills := newFakeSkills(
		&model.Skill{ID: 1, UserID: "owner", Title: "Guitar", Level: model.SkillLevelBeginner, Type: model.SkillTypeTeach, IsActive: true},
		&model.Skill{ID: 2, UserID: "owner", Title: "Piano", Level: model.SkillLevelBeginner, Type: model.SkillTypeTeach, IsActive: false},
	)
	users := newFakeUsers(&model.User{ID: "owner", FirstName: &first}, &model.User{ID: "learner"}, &model.User{ID: "other"})
	requests := newFakeRequests(skills)
	return &exchangeFixture{
		svc:      NewExchangeService(requests, skills, users),
		skills:   skills,
		requests: requests,
	}
}

func TestExchangeService_CreateStartsPending(t *testing.T) {
	fx := newExchangeFixture()
	msg := "  <b>Hi</b> there "

	req, err := fx.svc.Create(context.Background(), "learner", ExchangeInput{SkillID: 1, Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, model.ExchangeStatusPending, req.Status)
	assert.Equal(t, "learner", req.RequesterID)
	require.NotNil(t, req.Message)
	assert.Equal(t, "Hi there", *req.Message)

	require.Len(t, fx.requests.notifications, 1)
	n := fx.requests.notifications[0]
	assert.Equal(t, "owner", n.UserID)
	assert.Equal(t, model.NotificationExchangeRequested, n.Type)
}

func TestExchangeService_CreateRejects(t *testing.T) {
	tests := []struct {
		name    string
		uid     string
		skillID uint64
		want    error
	}{
		{"own skill", "owner", 1, ErrSelfRequest},
		{"inactive skill", "learner", 2, ErrSkillInactive},
		{"missing skill", "learner", 99, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newExchangeFixture()
			_, err := fx.svc.Create(context.Background(), tt.uid, ExchangeInput{SkillID: tt.skillID})
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, fx.requests.rows)
		})
	}
}

func TestExchangeService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name   string
		from   model.ExchangeStatus
		uid    string
		status string
		want   error
	}{
		{"owner accepts", model.ExchangeStatusPending, "owner", "accepted", nil},
		{"owner rejects", model.ExchangeStatusPending, "owner", "REJECTED", nil},
		{"requester cannot accept", model.ExchangeStatusPending, "learner", "accepted", ErrForbidden},
		{"outsider cannot touch", model.ExchangeStatusPending, "other", "rejected", ErrForbidden},
		{"requester completes", model.ExchangeStatusAccepted, "learner", "completed", nil},
		{"owner completes", model.ExchangeStatusAccepted, "owner", "completed", nil},
		{"pending cannot complete", model.ExchangeStatusPending, "owner", "completed", ErrInvalidTransition},
		{"rejected is terminal", model.ExchangeStatusRejected, "owner", "accepted", ErrInvalidTransition},
		{"completed is terminal", model.ExchangeStatusCompleted, "learner", "completed", ErrInvalidTransition},
		{"back to pending", model.ExchangeStatusAccepted, "owner", "pending", ErrInvalidTransition},
		{"unknown status", model.ExchangeStatusPending, "owner", "cancelled", ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newExchangeFixture()
			r := fx.requests.put(model.ExchangeRequest{RequesterID: "learner", SkillID: 1, Status: tt.from})

			got, err := fx.svc.UpdateStatus(context.Background(), r.ID, tt.uid, tt.status)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, tt.from, fx.requests.rows[r.ID].Status)
				assert.Empty(t, fx.requests.notifications)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, got.Status, fx.requests.rows[r.ID].Status)
			require.Len(t, fx.requests.notifications, 1)
			assert.Equal(t, got.Counterpart(tt.uid), fx.requests.notifications[0].UserID)
		})
	}
}

func TestExchangeService_UpdateStatusLostRace(t *testing.T) {
	fx := newExchangeFixture()
	r := fx.requests.put(model.ExchangeRequest{RequesterID: "learner", SkillID: 1, Status: model.ExchangeStatusPending})
	fx.requests.raceTo = model.ExchangeStatusRejected

	_, err := fx.svc.UpdateStatus(context.Background(), r.ID, "owner", "accepted")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.ExchangeStatusRejected, fx.requests.rows[r.ID].Status)
}

func TestExchangeService_GetRequiresParticipant(t *testing.T) {
	fx := newExchangeFixture()
	r := fx.requests.put(model.ExchangeRequest{RequesterID: "learner", SkillID: 1, Status: model.ExchangeStatusPending})

	_, err := fx.svc.Get(context.Background(), r.ID, "owner")
	assert.NoError(t, err)
	_, err = fx.svc.Get(context.Background(), r.ID, "other")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = fx.svc.Get(context.Background(), 404, "owner")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExchangeService_List(t *testing.T) {
	fx := newExchangeFixture()
	fx.requests.put(model.ExchangeRequest{RequesterID: "learner", SkillID: 1, Status: model.ExchangeStatusPending})
	fx.requests.put(model.ExchangeRequest{RequesterID: "learner", SkillID: 1, Status: model.ExchangeStatusAccepted})
	fx.requests.put(model.ExchangeRequest{RequesterID: "other", SkillID: 1, Status: model.ExchangeStatusPending})

	all, err := fx.svc.List(context.Background(), "owner", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := fx.svc.List(context.Background(), "learner", "pending")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = fx.svc.List(context.Background(), "learner", "bogus")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExchangeService_Withdraw(t *testing.T) {
	fx := newExchangeFixture()
	pending := fx.requests.put(model.ExchangeRequest{RequesterID: "learner", SkillID: 1, Status: model.ExchangeStatusPending})
	accepted := fx.requests.put(model.ExchangeRequest{RequesterID: "learner", SkillID: 1, Status: model.ExchangeStatusAccepted})

	assert.ErrorIs(t, fx.svc.Withdraw(context.Background(), pending.ID, "owner"), ErrForbidden)
	assert.ErrorIs(t, fx.svc.Withdraw(context.Background(), accepted.ID, "learner"), ErrInvalidTransition)
	require.NoError(t, fx.svc.Withdraw(context.Background(), pending.ID, "learner"))
	assert.NotContains(t, fx.requests.rows, pending.ID)
	assert.ErrorIs(t, fx.svc.Withdraw(context.Background(), pending.ID, "learner"), ErrNotFound)
}

func TestExchangeService_HistoryOnlyCompleted(t *testing.T) {
	fx := newExchangeFixture()
	done := fx.requests.put(model.ExchangeRequest{RequesterID: "learner", SkillID: 1, Status: model.ExchangeStatusCompleted})
	fx.requests.put(model.ExchangeRequest{RequesterID: "learner", SkillID: 1, Status: model.ExchangeStatusPending})
	fx.requests.put(model.ExchangeRequest{RequesterID: "other", SkillID: 1, Status: model.ExchangeStatusAccepted})

	tests := []struct {
		name string
		uid  string
		want int
		err  error
	}{
		{"skill owner", "owner", 1, nil},
		{"requester", "learner", 1, nil},
		{"no completed swaps", "other", 0, nil},
		{"unknown user", "ghost", 0, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := fx.svc.History(context.Background(), tt.uid)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Len(t, list, tt.want)
			for _, r := range list {
				assert.Equal(t, model.ExchangeStatusCompleted, r.Status)
				assert.Equal(t, done.ID, r.ID)
			}
		})
	}
}
