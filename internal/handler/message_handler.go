package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/service"
)

type MessageHandler struct {
	svc service.MessageService
}

func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type MessageResponse struct {
	ID                uint64  `json:"id"`
	SenderID          string  `json:"senderId"`
	ReceiverID        string  `json:"receiverId"`
	ExchangeRequestID *uint64 `json:"exchangeRequestId"`
	Content           string  `json:"content"`
	IsRead            bool    `json:"isRead"`
	CreatedAt         string  `json:"createdAt"`
}

type ConversationResponse struct {
	User        *UserSummary    `json:"user"`
	LastMessage MessageResponse `json:"lastMessage"`
	UnreadCount int64           `json:"unreadCount"`
	HasUnread   bool            `json:"hasUnread"`
}

type SendMessageRequest struct {
	ReceiverID        string  `json:"receiverId" validate:"required,max=128"`
	Content           string  `json:"content" validate:"required,max=5000"`
	ExchangeRequestID *uint64 `json:"exchangeRequestId" validate:"omitempty,gt=0"`
}

func toMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:                m.ID,
		SenderID:          m.SenderID,
		ReceiverID:        m.ReceiverID,
		ExchangeRequestID: m.ExchangeRequestID,
		Content:           m.Content,
		IsRead:            m.IsRead,
		CreatedAt:         formatTime(m.CreatedAt),
	}
}

// Transcript returns the messages between the caller and :userId, oldest first.
func (h *MessageHandler) Transcript(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	other := strings.TrimSpace(c.Param("userId"))
	if other == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	msgs, err := h.svc.Transcript(c.Request().Context(), uid, other)
	if err != nil {
		return respondError(c, err, "message")
	}
	resp := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, toMessageResponse(&msgs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) Conversations(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	convs, err := h.svc.Conversations(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err, "conversation")
	}
	resp := make([]ConversationResponse, 0, len(convs))
	for i := range convs {
		cv := &convs[i]
		resp = append(resp, ConversationResponse{
			User:        toUserSummary(cv.User),
			LastMessage: toMessageResponse(&cv.LastMessage),
			UnreadCount: cv.UnreadCount,
			HasUnread:   cv.HasUnread(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) Send(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	var req SendMessageRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	m, err := h.svc.Send(c.Request().Context(), uid, service.MessageInput{
		ReceiverID:        req.ReceiverID,
		Content:           req.Content,
		ExchangeRequestID: req.ExchangeRequestID,
	})
	if err != nil {
		return respondError(c, err, "receiver")
	}
	return c.JSON(http.StatusCreated, toMessageResponse(m))
}

// MarkRead flags every message :senderId sent to the caller as read.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	sender := strings.TrimSpace(c.Param("senderId"))
	if sender == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid sender id"))
	}
	n, err := h.svc.MarkRead(c.Request().Context(), uid, sender)
	if err != nil {
		return respondError(c, err, "message")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"message": "Messages marked as read",
		"updated": n,
	})
}
