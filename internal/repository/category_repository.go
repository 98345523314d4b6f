package repository

import (
	"context"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.SkillCategory, error)
	FindByID(ctx context.Context, id uint64) (*model.SkillCategory, error)
	SeedDefaults(ctx context.Context, force bool) (int64, error)
	SetDB(db *gorm.DB)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *categoryRepository) List(ctx context.Context) ([]model.SkillCategory, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.SkillCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*model.SkillCategory, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var c model.SkillCategory
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// SeedDefaults inserts DefaultCategories when the table is empty, or always when force is set.
// Existing names are left untouched. It returns the number of rows inserted.
func (r *categoryRepository) SeedDefaults(ctx context.Context, force bool) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.SkillCategory{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 && !force {
			return nil
		}
		rows := DefaultCategories()
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&rows)
		if res.Error != nil {
			return res.Error
		}
		inserted = res.RowsAffected
		return nil
	})
	return inserted, err
}

func DefaultCategories() []model.SkillCategory {
	return []model.SkillCategory{
		{Name: "Programming", Icon: "fas fa-code", Color: "text-blue-500"},
		{Name: "Design", Icon: "fas fa-paint-brush", Color: "text-green-500"},
		{Name: "Languages", Icon: "fas fa-language", Color: "text-yellow-500"},
		{Name: "Music", Icon: "fas fa-guitar", Color: "text-purple-500"},
		{Name: "Business", Icon: "fas fa-chart-line", Color: "text-green-500"},
		{Name: "Fitness", Icon: "fas fa-dumbbell", Color: "text-red-500"},
		{Name: "Photography", Icon: "fas fa-camera", Color: "text-indigo-500"},
		{Name: "Cooking", Icon: "fas fa-utensils", Color: "text-orange-500"},
	}
}
