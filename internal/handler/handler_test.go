package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/auth"
	"github.com/shinyyama/skillswap-backend/internal/handler"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	"github.com/shinyyama/skillswap-backend/internal/service"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExchangeService struct{ mock.Mock }

func (m *mockExchangeService) List(ctx context.Context, uid, status string) ([]model.ExchangeRequest, error) {
	args := m.Called(ctx, uid, status)
	list, _ := args.Get(0).([]model.ExchangeRequest)
	return list, args.Error(1)
}

func (m *mockExchangeService) Get(ctx context.Context, id uint64, uid string) (*model.ExchangeRequest, error) {
	args := m.Called(ctx, id, uid)
	r, _ := args.Get(0).(*model.ExchangeRequest)
	return r, args.Error(1)
}

func (m *mockExchangeService) Create(ctx context.Context, uid string, in service.ExchangeInput) (*model.ExchangeRequest, error) {
	args := m.Called(ctx, uid, in)
	r, _ := args.Get(0).(*model.ExchangeRequest)
	return r, args.Error(1)
}

func (m *mockExchangeService) UpdateStatus(ctx context.Context, id uint64, uid, status string) (*model.ExchangeRequest, error) {
	args := m.Called(ctx, id, uid, status)
	r, _ := args.Get(0).(*model.ExchangeRequest)
	return r, args.Error(1)
}

func (m *mockExchangeService) Withdraw(ctx context.Context, id uint64, uid string) error {
	return m.Called(ctx, id, uid).Error(0)
}

func (m *mockExchangeService) History(ctx context.Context, userID string) ([]model.ExchangeRequest, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.ExchangeRequest)
	return list, args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Sync(ctx context.Context, id auth.Identity) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) Get(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) List(ctx context.Context, q service.UserQuery) ([]model.User, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]model.User)
	return list, args.Error(1)
}

func (m *mockUserService) Profile(ctx context.Context, id string) (*service.UserProfile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*service.UserProfile)
	return p, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id string, in service.ProfileInput) (*model.User, error) {
	args := m.Called(ctx, id, in)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type mockRatingService struct{ mock.Mock }

func (m *mockRatingService) ListForUser(ctx context.Context, userID string) ([]model.Rating, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Rating)
	return list, args.Error(1)
}

func (m *mockRatingService) Summary(ctx context.Context, userID string) (repository.RatingSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(repository.RatingSummary), args.Error(1)
}

func (m *mockRatingService) Create(ctx context.Context, uid string, in service.RatingInput) (*model.Rating, error) {
	args := m.Called(ctx, uid, in)
	r, _ := args.Get(0).(*model.Rating)
	return r, args.Error(1)
}

type mockMessageService struct{ mock.Mock }

func (m *mockMessageService) Transcript(ctx context.Context, uid, otherID string) ([]model.Message, error) {
	args := m.Called(ctx, uid, otherID)
	list, _ := args.Get(0).([]model.Message)
	return list, args.Error(1)
}

func (m *mockMessageService) Conversations(ctx context.Context, uid string) ([]model.Conversation, error) {
	args := m.Called(ctx, uid)
	list, _ := args.Get(0).([]model.Conversation)
	return list, args.Error(1)
}

func (m *mockMessageService) Send(ctx context.Context, uid string, in service.MessageInput) (*model.Message, error) {
	args := m.Called(ctx, uid, in)
	msg, _ := args.Get(0).(*model.Message)
	return msg, args.Error(1)
}

func (m *mockMessageService) MarkRead(ctx context.Context, uid, senderID string) (int64, error) {
	args := m.Called(ctx, uid, senderID)
	return args.Get(0).(int64), args.Error(1)
}

// request is a single handler invocation with an optional authenticated uid and path params.
type request struct {
	method string
	body   string
	uid    string
	params map[string]string
	query  string
}

func serve(t *testing.T, h echo.HandlerFunc, r request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	e.Validator = handler.NewValidator()

	target := "/"
	if r.query != "" {
		target += "?" + r.query
	}
	req := httptest.NewRequest(r.method, target, strings.NewReader(r.body))
	if r.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if r.uid != "" {
		c.Set("uid", r.uid)
	}
	if len(r.params) > 0 {
		names := make([]string, 0, len(r.params))
		values := make([]string, 0, len(r.params))
		for k, v := range r.params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	require.NoError(t, h(c))

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func errorCode(body map[string]interface{}) string {
	e, _ := body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}

func sampleExchange(status model.ExchangeStatus) *model.ExchangeRequest {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &model.ExchangeRequest{
		ID:          7,
		RequesterID: "learner",
		SkillID:     3,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
		Skill:       &model.Skill{ID: 3, UserID: "owner", Title: "Guitar", IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
}
