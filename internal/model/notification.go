package model

import "time"

const (
	NotificationExchangeRequested = "exchange_requested"
	NotificationExchangeStatus    = "exchange_status"
	NotificationRatingReceived    = "rating_received"
)

type Notification struct {
	ID                uint64     `gorm:"primaryKey;autoIncrement"`
	UserID            string     `gorm:"column:user_id;size:128;index;not null"`
	Type              string     `gorm:"column:type;size:64;not null"`
	Title             string     `gorm:"column:title;size:255"`
	Body              string     `gorm:"column:body;type:text"`
	ExchangeRequestID *uint64    `gorm:"column:exchange_request_id;index"`
	RatingID          *uint64    `gorm:"column:rating_id"`
	ReadAt            *time.Time `gorm:"column:read_at"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
