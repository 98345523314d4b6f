package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	RaterID           string    `gorm:"column:rater_id;size:128;not null;uniqueIndex:uk_ratings_rater_exchange,priority:1"`
	Rater             *User     `gorm:"foreignKey:RaterID"`
	RatedUserID       string    `gorm:"column:rated_user_id;size:128;not null;index"`
	RatedUser         *User     `gorm:"foreignKey:RatedUserID"`
	ExchangeRequestID *uint64   `gorm:"column:exchange_request_id;uniqueIndex:uk_ratings_rater_exchange,priority:2"`
	Rating            int       `gorm:"not null;check:chk_ratings_range,rating >= 1 AND rating <= 5"`
	Review            *string   `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}
