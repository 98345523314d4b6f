package model

import "time"

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
)

type SkillType string

const (
	SkillTypeTeach SkillType = "teach"
	SkillTypeLearn SkillType = "learn"
)

// Skill is deleted logically by clearing IsActive so exchange requests keep a valid target.
type Skill struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement"`
	UserID      string         `gorm:"column:user_id;size:128;not null;index"`
	User        *User          `gorm:"foreignKey:UserID"`
	CategoryID  *uint64        `gorm:"column:category_id;index"`
	Category    *SkillCategory `gorm:"foreignKey:CategoryID"`
	Title       string         `gorm:"size:200;not null"`
	Description string         `gorm:"type:text;not null"`
	Level       SkillLevel     `gorm:"size:20;not null"`
	Type        SkillType      `gorm:"size:10;not null;index"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Skill) TableName() string {
	return "skills"
}
