package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type UserResponse struct {
	ID              string  `json:"id"`
	Email           *string `json:"email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	Bio             *string `json:"bio"`
	Location        *string `json:"location"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// UserSummary is the public slice of a user embedded in other resources.
type UserSummary struct {
	ID              string  `json:"id"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

type PublicProfileResponse struct {
	UserSummary
	Bio           *string `json:"bio"`
	Location      *string `json:"location"`
	AverageRating float64 `json:"averageRating"`
	RatingCount   int64   `json:"ratingCount"`
	CreatedAt     string  `json:"createdAt"`
}

type PublicUserResponse struct {
	UserSummary
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	CreatedAt string  `json:"createdAt"`
}

type UpdateProfileRequest struct {
	FirstName       *string `json:"firstName" validate:"omitempty,max=120"`
	LastName        *string `json:"lastName" validate:"omitempty,max=120"`
	Bio             *string `json:"bio" validate:"omitempty,max=2000"`
	Location        *string `json:"location" validate:"omitempty,max=200"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,max=512"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Bio:             u.Bio,
		Location:        u.Location,
		CreatedAt:       formatTime(u.CreatedAt),
		UpdatedAt:       formatTime(u.UpdatedAt),
	}
}

func toUserSummary(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// Me returns the authenticated user.
func (h *UserHandler) Me(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	u, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	var req UpdateProfileRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	u, err := h.svc.UpdateProfile(c.Request().Context(), uid, service.ProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Bio:             req.Bio,
		Location:        req.Location,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// List serves GET /api/users?search=&limit=&offset=.
func (h *UserHandler) List(c echo.Context) error {
	q := service.UserQuery{Search: c.QueryParam("search")}
	for name, dst := range map[string]*int{"limit": &q.Limit, "offset": &q.Offset} {
		v := c.QueryParam(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", name+" must be a non-negative integer"))
		}
		*dst = n
	}
	users, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err, "user")
	}
	resp := make([]PublicUserResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		resp = append(resp, PublicUserResponse{
			UserSummary: *toUserSummary(u),
			Bio:         u.Bio,
			Location:    u.Location,
			CreatedAt:   formatTime(u.CreatedAt),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetPublic(c echo.Context) error {
	id := strings.TrimSpace(c.Param("userId"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	p, err := h.svc.Profile(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "user")
	}
	return c.JSON(http.StatusOK, PublicProfileResponse{
		UserSummary:   *toUserSummary(p.User),
		Bio:           p.User.Bio,
		Location:      p.User.Location,
		AverageRating: p.AverageRating,
		RatingCount:   p.RatingCount,
		CreatedAt:     formatTime(p.User.CreatedAt),
	})
}
