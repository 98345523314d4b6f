package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/service"
)

type ExchangeHandler struct {
	svc service.ExchangeService
}

func NewExchangeHandler(svc service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{svc: svc}
}

type ExchangeRequestResponse struct {
	ID            uint64         `json:"id"`
	RequesterID   string         `json:"requesterId"`
	SkillID       uint64         `json:"skillId"`
	Message       *string        `json:"message"`
	Status        string         `json:"status"`
	ScheduledDate *string        `json:"scheduledDate"`
	CompletedAt   *string        `json:"completedAt"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
	Requester     *UserSummary   `json:"requester,omitempty"`
	Skill         *SkillResponse `json:"skill,omitempty"`
}

type CreateExchangeRequest struct {
	SkillID       uint64     `json:"skillId" validate:"required,gt=0"`
	Message       *string    `json:"message" validate:"omitempty,max=2000"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected completed"`
}

func toExchangeResponse(r *model.ExchangeRequest) ExchangeRequestResponse {
	resp := ExchangeRequestResponse{
		ID:            r.ID,
		RequesterID:   r.RequesterID,
		SkillID:       r.SkillID,
		Message:       r.Message,
		Status:        string(r.Status),
		ScheduledDate: formatTimePtr(r.ScheduledDate),
		CompletedAt:   formatTimePtr(r.CompletedAt),
		CreatedAt:     formatTime(r.CreatedAt),
		UpdatedAt:     formatTime(r.UpdatedAt),
		Requester:     toUserSummary(r.Requester),
	}
	if r.Skill != nil {
		s := toSkillResponse(r.Skill)
		resp.Skill = &s
	}
	return resp
}

// List returns requests the caller sent or received, optionally narrowed by ?status=.
func (h *ExchangeHandler) List(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	list, err := h.svc.List(c.Request().Context(), uid, c.QueryParam("status"))
	if err != nil {
		return respondError(c, err, "exchange request")
	}
	resp := make([]ExchangeRequestResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toExchangeResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// History lists a user's completed exchanges. Public, so the request message is left out.
func (h *ExchangeHandler) History(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	list, err := h.svc.History(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "user")
	}
	resp := make([]ExchangeRequestResponse, 0, len(list))
	for i := range list {
		r := toExchangeResponse(&list[i])
		r.Message = nil
		resp = append(resp, r)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ExchangeHandler) Get(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid exchange request id"))
	}
	r, err := h.svc.Get(c.Request().Context(), id, uid)
	if err != nil {
		return respondError(c, err, "exchange request")
	}
	return c.JSON(http.StatusOK, toExchangeResponse(r))
}

func (h *ExchangeHandler) Create(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	var req CreateExchangeRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	r, err := h.svc.Create(c.Request().Context(), uid, service.ExchangeInput{
		SkillID:       req.SkillID,
		Message:       req.Message,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		return respondError(c, err, "skill")
	}
	return c.JSON(http.StatusCreated, toExchangeResponse(r))
}

func (h *ExchangeHandler) UpdateStatus(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid exchange request id"))
	}
	var req UpdateStatusRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	r, err := h.svc.UpdateStatus(c.Request().Context(), id, uid, req.Status)
	if err != nil {
		return respondError(c, err, "exchange request")
	}
	return c.JSON(http.StatusOK, toExchangeResponse(r))
}

// Withdraw deletes a pending request on behalf of its requester.
func (h *ExchangeHandler) Withdraw(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid exchange request id"))
	}
	if err := h.svc.Withdraw(c.Request().Context(), id, uid); err != nil {
		return respondError(c, err, "exchange request")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
