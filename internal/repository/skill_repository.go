package repository

import (
	"context"
	"strings"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"gorm.io/gorm"
)

type SkillFilter struct {
	CategoryID *uint64
	Type       *model.SkillType
	Search     string
}

type SkillRepository interface {
	List(ctx context.Context, f SkillFilter) ([]model.Skill, error)
	FindByID(ctx context.Context, id uint64) (*model.Skill, error)
	ListByUser(ctx context.Context, userID string) ([]model.Skill, error)
	Create(ctx context.Context, s *model.Skill) error
	Update(ctx context.Context, id uint64, fields map[string]interface{}) error
	Deactivate(ctx context.Context, id uint64) error
	SetDB(db *gorm.DB)
}

type skillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *skillRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Category")
}

// List returns active skills only, newest first.
func (r *skillRepository) List(ctx context.Context, f SkillFilter) ([]model.Skill, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.withRelations(ctx).Where("skills.is_active = ?", true)
	if f.CategoryID != nil {
		q = q.Where("skills.category_id = ?", *f.CategoryID)
	}
	if f.Type != nil {
		q = q.Where("skills.type = ?", *f.Type)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := containsPattern(s)
		q = q.Where("LOWER(skills.title) LIKE ? OR LOWER(skills.description) LIKE ?", p, p)
	}
	var list []model.Skill
	if err := q.Order("skills.created_at DESC").Order("skills.id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *skillRepository) FindByID(ctx context.Context, id uint64) (*model.Skill, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var s model.Skill
	if err := r.withRelations(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUser includes inactive skills so owners still see retired listings.
func (r *skillRepository) ListByUser(ctx context.Context, userID string) ([]model.Skill, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Skill
	if err := r.withRelations(ctx).
		Where("skills.user_id = ?", userID).
		Order("skills.created_at DESC").Order("skills.id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *skillRepository) Create(ctx context.Context, s *model.Skill) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Omit("User", "Category").Create(s).Error
}

func (r *skillRepository) Update(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	res := r.db.WithContext(ctx).Model(&model.Skill{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *skillRepository) Deactivate(ctx context.Context, id uint64) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}
