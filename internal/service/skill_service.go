package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
)

const maxTitleRunes = 200

type SkillQuery struct {
	CategoryID *uint64
	Type       string
	Search     string
}

type SkillInput struct {
	Title       string
	Description string
	Level       string
	Type        string
	CategoryID  *uint64
}

// SkillPatch carries only the fields the caller wants to change.
type SkillPatch struct {
	Title       *string
	Description *string
	Level       *string
	Type        *string
	CategoryID  *uint64
	IsActive    *bool
}

type SkillService interface {
	List(ctx context.Context, q SkillQuery) ([]model.Skill, error)
	Get(ctx context.Context, id uint64) (*model.Skill, error)
	ListByUser(ctx context.Context, userID string) ([]model.Skill, error)
	Create(ctx context.Context, uid string, in SkillInput) (*model.Skill, error)
	Update(ctx context.Context, id uint64, uid string, p SkillPatch) (*model.Skill, error)
	Delete(ctx context.Context, id uint64, uid string) error
}

type skillService struct {
	skills     repository.SkillRepository
	categories repository.CategoryRepository
}

func NewSkillService(skills repository.SkillRepository, categories repository.CategoryRepository) SkillService {
	return &skillService{skills: skills, categories: categories}
}

func parseLevel(v string) (model.SkillLevel, error) {
	switch l := model.SkillLevel(strings.ToLower(strings.TrimSpace(v))); l {
	case model.SkillLevelBeginner, model.SkillLevelIntermediate, model.SkillLevelAdvanced:
		return l, nil
	}
	return "", fmt.Errorf("%w: level must be beginner, intermediate or advanced", ErrInvalidInput)
}

func parseType(v string) (model.SkillType, error) {
	switch t := model.SkillType(strings.ToLower(strings.TrimSpace(v))); t {
	case model.SkillTypeTeach, model.SkillTypeLearn:
		return t, nil
	}
	return "", fmt.Errorf("%w: type must be teach or learn", ErrInvalidInput)
}

func (s *skillService) List(ctx context.Context, q SkillQuery) ([]model.Skill, error) {
	f := repository.SkillFilter{CategoryID: q.CategoryID, Search: q.Search}
	if q.Type != "" {
		t, err := parseType(q.Type)
		if err != nil {
			return nil, err
		}
		f.Type = &t
	}
	return s.skills.List(ctx, f)
}

func (s *skillService) Get(ctx context.Context, id uint64) (*model.Skill, error) {
	sk, err := s.skills.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return sk, nil
}

func (s *skillService) ListByUser(ctx context.Context, userID string) ([]model.Skill, error) {
	return s.skills.ListByUser(ctx, userID)
}

func (s *skillService) checkCategory(ctx context.Context, id *uint64) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *id); err != nil {
		if notFound(err) == ErrNotFound {
			return ErrInvalidCategory
		}
		return err
	}
	return nil
}

func (s *skillService) Create(ctx context.Context, uid string, in SkillInput) (*model.Skill, error) {
	title := cleanText(in.Title)
	description := cleanText(in.Description)
	if title == "" || utf8.RuneCountInString(title) > maxTitleRunes {
		return nil, fmt.Errorf("%w: title is required (max 200 characters)", ErrInvalidInput)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	level, err := parseLevel(in.Level)
	if err != nil {
		return nil, err
	}
	typ, err := parseType(in.Type)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	sk := &model.Skill{
		UserID:      uid,
		CategoryID:  in.CategoryID,
		Title:       title,
		Description: description,
		Level:       level,
		Type:        typ,
		IsActive:    true,
	}
	if err := s.skills.Create(ctx, sk); err != nil {
		return nil, err
	}
	return s.Get(ctx, sk.ID)
}

// Update applies p to a skill owned by uid.
func (s *skillService) Update(ctx context.Context, id uint64, uid string, p SkillPatch) (*model.Skill, error) {
	sk, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sk.UserID != uid {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{}
	if p.Title != nil {
		t := cleanText(*p.Title)
		if t == "" || utf8.RuneCountInString(t) > maxTitleRunes {
			return nil, fmt.Errorf("%w: title is required (max 200 characters)", ErrInvalidInput)
		}
		fields["title"] = t
	}
	if p.Description != nil {
		d := cleanText(*p.Description)
		if d == "" {
			return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
		}
		fields["description"] = d
	}
	if p.Level != nil {
		l, err := parseLevel(*p.Level)
		if err != nil {
			return nil, err
		}
		fields["level"] = l
	}
	if p.Type != nil {
		t, err := parseType(*p.Type)
		if err != nil {
			return nil, err
		}
		fields["type"] = t
	}
	if p.CategoryID != nil {
		if err := s.checkCategory(ctx, p.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *p.CategoryID
	}
	if p.IsActive != nil {
		fields["is_active"] = *p.IsActive
	}
	if len(fields) == 0 {
		return sk, nil
	}
	if err := s.skills.Update(ctx, id, fields); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, id)
}

// Delete retires the skill; the row stays for existing exchange requests.
func (s *skillService) Delete(ctx context.Context, id uint64, uid string) error {
	sk, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if sk.UserID != uid {
		return ErrForbidden
	}
	return notFound(s.skills.Deactivate(ctx, id))
}
