package repository

import (
	"context"
	"strings"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultUserPage = 20
	maxUserPage     = 100
)

// UserFilter narrows the public user directory. Search matches first name, last name or location.
type UserFilter struct {
	Search string
	Limit  int
	Offset int
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, f UserFilter) ([]model.User, error)
	Upsert(ctx context.Context, u *model.User) error
	UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error)
	SetDB(db *gorm.DB)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert inserts u, or on id conflict overwrites only the fields u carries.
func (r *userRepository) List(ctx context.Context, f UserFilter) ([]model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	limit := f.Limit
	if limit <= 0 || limit > maxUserPage {
		limit = defaultUserPage
	}
	q := r.db.WithContext(ctx)
	if s := strings.TrimSpace(f.Search); s != "" {
		p := containsPattern(s)
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(location) LIKE ?", p, p, p)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var list []model.User
	if err := q.Order("created_at DESC").Order("id ASC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *userRepository) Upsert(ctx context.Context, u *model.User) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	cols := []string{"updated_at"}
	if u.Email != nil {
		cols = append(cols, "email")
	}
	if u.FirstName != nil {
		cols = append(cols, "first_name")
	}
	if u.LastName != nil {
		cols = append(cols, "last_name")
	}
	if u.ProfileImageURL != nil {
		cols = append(cols, "profile_image_url")
	}
	if u.Bio != nil {
		cols = append(cols, "bio")
	}
	if u.Location != nil {
		cols = append(cols, "location")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).
		Create(u).Error
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}
