package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/service"
)

type SkillHandler struct {
	svc service.SkillService
}

func NewSkillHandler(svc service.SkillService) *SkillHandler {
	return &SkillHandler{svc: svc}
}

type SkillResponse struct {
	ID          uint64            `json:"id"`
	UserID      string            `json:"userId"`
	CategoryID  *uint64           `json:"categoryId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Level       string            `json:"level"`
	Type        string            `json:"type"`
	IsActive    bool              `json:"isActive"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
	User        *UserSummary      `json:"user,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

type CreateSkillRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required,max=5000"`
	Level       string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Type        string  `json:"type" validate:"required,oneof=teach learn"`
	CategoryID  *uint64 `json:"categoryId" validate:"omitempty,gt=0"`
}

type UpdateSkillRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1,max=5000"`
	Level       *string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Type        *string `json:"type" validate:"omitempty,oneof=teach learn"`
	CategoryID  *uint64 `json:"categoryId" validate:"omitempty,gt=0"`
	IsActive    *bool   `json:"isActive"`
}

func toSkillResponse(s *model.Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		CategoryID:  s.CategoryID,
		Title:       s.Title,
		Description: s.Description,
		Level:       string(s.Level),
		Type:        string(s.Type),
		IsActive:    s.IsActive,
		CreatedAt:   formatTime(s.CreatedAt),
		UpdatedAt:   formatTime(s.UpdatedAt),
		User:        toUserSummary(s.User),
		Category:    toCategoryResponse(s.Category),
	}
}

func toSkillList(list []model.Skill) []SkillResponse {
	resp := make([]SkillResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toSkillResponse(&list[i]))
	}
	return resp
}

// List serves GET /api/skills?category=&type=&search=.
func (h *SkillHandler) List(c echo.Context) error {
	q := service.SkillQuery{
		Type:   strings.TrimSpace(c.QueryParam("type")),
		Search: strings.TrimSpace(c.QueryParam("search")),
	}
	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		id, err := strconv.ParseUint(cat, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid category"))
		}
		q.CategoryID = &id
	}
	list, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err, "skill")
	}
	return c.JSON(http.StatusOK, toSkillList(list))
}

func (h *SkillHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid skill id"))
	}
	s, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "skill")
	}
	return c.JSON(http.StatusOK, toSkillResponse(s))
}

func (h *SkillHandler) ListByUser(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	list, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "skill")
	}
	return c.JSON(http.StatusOK, toSkillList(list))
}

func (h *SkillHandler) Create(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	var req CreateSkillRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	s, err := h.svc.Create(c.Request().Context(), uid, service.SkillInput{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondError(c, err, "skill")
	}
	return c.JSON(http.StatusCreated, toSkillResponse(s))
}

func (h *SkillHandler) Update(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid skill id"))
	}
	var req UpdateSkillRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	s, err := h.svc.Update(c.Request().Context(), id, uid, service.SkillPatch{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return respondError(c, err, "skill")
	}
	return c.JSON(http.StatusOK, toSkillResponse(s))
}

func (h *SkillHandler) Delete(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid skill id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id, uid); err != nil {
		return respondError(c, err, "skill")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "message": "Skill deleted successfully"})
}
