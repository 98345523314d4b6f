package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shinyyama/skillswap-backend/internal/auth"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	"gorm.io/gorm"
)

type ProfileInput struct {
	FirstName       *string
	LastName        *string
	Bio             *string
	Location        *string
	ProfileImageURL *string
}

type UserQuery struct {
	Search string
	Limit  int
	Offset int
}

type UserProfile struct {
	User          *model.User
	AverageRating float64
	RatingCount   int64
}

type UserService interface {
	Sync(ctx context.Context, id auth.Identity) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, q UserQuery) ([]model.User, error)
	Profile(ctx context.Context, id string) (*UserProfile, error)
	UpdateProfile(ctx context.Context, id string, in ProfileInput) (*model.User, error)
}

type userService struct {
	users   repository.UserRepository
	ratings repository.RatingRepository
}

func NewUserService(users repository.UserRepository, ratings repository.RatingRepository) UserService {
	return &userService{users: users, ratings: ratings}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Sync makes sure the verified identity has a users row. Names are taken from the provider only on
// first sight so profile edits survive later logins; email and picture follow the provider.
func (s *userService) Sync(ctx context.Context, id auth.Identity) (*model.User, error) {
	if id.UID == "" {
		return nil, fmt.Errorf("%w: identity without uid", ErrInvalidInput)
	}
	existing, err := s.users.FindByID(ctx, id.UID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing == nil {
		u := &model.User{
			ID:              id.UID,
			Email:           strPtr(id.Email),
			FirstName:       strPtr(id.FirstName),
			LastName:        strPtr(id.LastName),
			ProfileImageURL: strPtr(id.PictureURL),
		}
		if err := s.users.Upsert(ctx, u); err != nil {
			return nil, err
		}
		return s.users.FindByID(ctx, id.UID)
	}

	patch := &model.User{ID: id.UID}
	changed := false
	if id.Email != "" && (existing.Email == nil || *existing.Email != id.Email) {
		patch.Email = strPtr(id.Email)
		changed = true
	}
	if id.PictureURL != "" && (existing.ProfileImageURL == nil || *existing.ProfileImageURL != id.PictureURL) {
		patch.ProfileImageURL = strPtr(id.PictureURL)
		changed = true
	}
	if !changed {
		return existing, nil
	}
	if err := s.users.Upsert(ctx, patch); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id.UID)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// List pages through the public user directory, newest members first.
func (s *userService) List(ctx context.Context, q UserQuery) ([]model.User, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	return s.users.List(ctx, repository.UserFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
}

func (s *userService) Profile(ctx context.Context, id string) (*UserProfile, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sum, err := s.ratings.Summary(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserProfile{User: u, AverageRating: RoundRating(sum.Average), RatingCount: sum.Count}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*model.User, error) {
	fields := map[string]interface{}{}
	set := func(col string, v *string) {
		if v == nil {
			return
		}
		if c := cleanText(*v); c != "" {
			fields[col] = c
		} else {
			fields[col] = nil
		}
	}
	set("first_name", in.FirstName)
	set("last_name", in.LastName)
	set("bio", in.Bio)
	set("location", in.Location)
	if in.ProfileImageURL != nil {
		u := strings.TrimSpace(*in.ProfileImageURL)
		if u != "" && !strings.HasPrefix(u, "https://") && !strings.HasPrefix(u, "http://") {
			return nil, fmt.Errorf("%w: profileImageUrl must be an http(s) URL", ErrInvalidInput)
		}
		if u == "" {
			fields["profile_image_url"] = nil
		} else {
			fields["profile_image_url"] = u
		}
	}
	u, err := s.users.UpdateProfile(ctx, id, fields)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}
