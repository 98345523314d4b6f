package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/service"
)

type RatingHandler struct {
	svc service.RatingService
}

func NewRatingHandler(svc service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

type RatingResponse struct {
	ID                uint64       `json:"id"`
	RaterID           string       `json:"raterId"`
	RatedUserID       string       `json:"ratedUserId"`
	ExchangeRequestID *uint64      `json:"exchangeRequestId"`
	Rating            int          `json:"rating"`
	Review            *string      `json:"review"`
	CreatedAt         string       `json:"createdAt"`
	Rater             *UserSummary `json:"rater,omitempty"`
}

type CreateRatingRequest struct {
	RatedUserID       string  `json:"ratedUserId" validate:"required,max=128"`
	Rating            int     `json:"rating" validate:"required,gte=1,lte=5"`
	Review            *string `json:"review" validate:"omitempty,max=2000"`
	ExchangeRequestID *uint64 `json:"exchangeRequestId" validate:"omitempty,gt=0"`
}

func toRatingResponse(r *model.Rating) RatingResponse {
	return RatingResponse{
		ID:                r.ID,
		RaterID:           r.RaterID,
		RatedUserID:       r.RatedUserID,
		ExchangeRequestID: r.ExchangeRequestID,
		Rating:            r.Rating,
		Review:            r.Review,
		CreatedAt:         formatTime(r.CreatedAt),
		Rater:             toUserSummary(r.Rater),
	}
}

func (h *RatingHandler) ListForUser(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	list, err := h.svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "rating")
	}
	resp := make([]RatingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toRatingResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RatingHandler) Average(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	sum, err := h.svc.Summary(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "rating")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"averageRating": sum.Average,
		"count":         sum.Count,
	})
}

func (h *RatingHandler) Create(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	var req CreateRatingRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	r, err := h.svc.Create(c.Request().Context(), uid, service.RatingInput{
		RatedUserID:       req.RatedUserID,
		Rating:            req.Rating,
		Review:            req.Review,
		ExchangeRequestID: req.ExchangeRequestID,
	})
	if err != nil {
		return respondError(c, err, "exchange request")
	}
	return c.JSON(http.StatusCreated, toRatingResponse(r))
}
