package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type CategoryResponse struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func toCategoryResponse(c *model.SkillCategory) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
}

func (h *CategoryHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "category")
	}
	resp := make([]CategoryResponse, 0, len(list))
	for i := range list {
		resp = append(resp, *toCategoryResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Seed inserts the default categories. ?force=true re-applies them to a non-empty table.
func (h *CategoryHandler) Seed(c echo.Context) error {
	force := c.QueryParam("force") == "true"
	n, err := h.svc.Seed(c.Request().Context(), force)
	if err != nil {
		return respondError(c, err, "category")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"inserted": n,
	})
}
