package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type NotificationResponse struct {
	ID                uint64  `json:"id"`
	Type              string  `json:"type"`
	Title             string  `json:"title"`
	Body              string  `json:"body"`
	ExchangeRequestID *uint64 `json:"exchangeRequestId,omitempty"`
	RatingID          *uint64 `json:"ratingId,omitempty"`
	ReadAt            *string `json:"readAt"`
	CreatedAt         string  `json:"createdAt"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

func toNotificationResponse(n *model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:                n.ID,
		Type:              n.Type,
		Title:             n.Title,
		Body:              n.Body,
		ExchangeRequestID: n.ExchangeRequestID,
		RatingID:          n.RatingID,
		ReadAt:            formatTimePtr(n.ReadAt),
		CreatedAt:         formatTime(n.CreatedAt),
	}
}

// List serves GET /api/notifications?unreadOnly=&limit=. Unread only unless unreadOnly=false.
func (h *NotificationHandler) List(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	unreadOnly := true
	if v := c.QueryParam("unreadOnly"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadOnly must be true or false"))
		}
		unreadOnly = b
	}
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "limit must be a positive integer"))
		}
		limit = n
	}
	page, err := h.svc.List(c.Request().Context(), uid, unreadOnly, limit)
	if err != nil {
		return respondError(c, err, "notification")
	}
	resp := NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(page.Items)),
		UnreadCount:   page.UnreadCount,
	}
	for i := range page.Items {
		resp.Notifications = append(resp.Notifications, toNotificationResponse(&page.Items[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid notification id"))
	}
	n, err := h.svc.MarkRead(c.Request().Context(), uid, id)
	if err != nil {
		return respondError(c, err, "notification")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok", "updated": n})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	n, err := h.svc.MarkAllRead(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err, "notification")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok", "updated": n})
}
