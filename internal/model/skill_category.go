package model

import "time"

type SkillCategory struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_skill_categories_name"`
	Icon      string    `gorm:"size:50"`
	Color     string    `gorm:"size:20"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SkillCategory) TableName() string {
	return "skill_categories"
}
