package db

import (
	"github.com/shinyyama/skillswap-backend/internal/model"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
