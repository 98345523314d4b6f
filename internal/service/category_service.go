package service

import (
	"context"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
)

type CategoryService interface {
	List(ctx context.Context) ([]model.SkillCategory, error)
	Seed(ctx context.Context, force bool) (int64, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]model.SkillCategory, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Seed(ctx context.Context, force bool) (int64, error) {
	return s.repo.SeedDefaults(ctx, force)
}
