package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/logging"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	"github.com/shinyyama/skillswap-backend/internal/service"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorPayload struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

func NewValidationErrorResponse(details []FieldError) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    "validation_error",
			Message: "invalid request body",
			Details: details,
		},
	}
}

var businessErrors = []struct {
	err  error
	code string
}{
	{service.ErrInvalidInput, "bad_request"},
	{service.ErrInvalidCategory, "invalid_category"},
	{service.ErrSkillInactive, "skill_inactive"},
	{service.ErrSelfRequest, "self_request"},
	{service.ErrInvalidTransition, "invalid_transition"},
	{service.ErrSelfMessage, "self_message"},
	{service.ErrEmptyContent, "bad_request"},
	{service.ErrSelfRating, "self_rating"},
	{service.ErrExchangeNotCompleted, "exchange_not_completed"},
	{service.ErrRatingTarget, "invalid_rating_target"},
	{service.ErrAlreadyRated, "already_rated"},
}

// respondError maps service and repository errors to the JSON error envelope.
// resource names the entity in not-found messages.
func respondError(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", resource+" not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed to act on this "+resource))
	case errors.Is(err, repository.ErrDBNotReady):
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("service_unavailable", "database not ready"))
	}
	for _, be := range businessErrors {
		if errors.Is(err, be.err) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse(be.code, err.Error()))
		}
	}
	logging.FromContext(c.Request().Context()).WithError(err).WithField("resource", resource).Error("unexpected error")
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "internal server error"))
}

func currentUID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
}

func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// bindValid binds the body into req and runs struct validation. On failure it has already
// written the 400 response and returns false.
func bindValid(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, NewValidationErrorResponse(validationDetails(err)))
	}
	return true, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
