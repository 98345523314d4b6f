package model

import "time"

type ExchangeStatus string

const (
	ExchangeStatusPending   ExchangeStatus = "pending"
	ExchangeStatusAccepted  ExchangeStatus = "accepted"
	ExchangeStatusRejected  ExchangeStatus = "rejected"
	ExchangeStatusCompleted ExchangeStatus = "completed"
)

// CanTransition reports whether a request in status s may move to next.
func (s ExchangeStatus) CanTransition(next ExchangeStatus) bool {
	switch s {
	case ExchangeStatusPending:
		return next == ExchangeStatusAccepted || next == ExchangeStatusRejected
	case ExchangeStatusAccepted:
		return next == ExchangeStatusCompleted
	}
	return false
}

type ExchangeRequest struct {
	ID            uint64         `gorm:"primaryKey;autoIncrement"`
	RequesterID   string         `gorm:"column:requester_id;size:128;not null;index"`
	Requester     *User          `gorm:"foreignKey:RequesterID"`
	SkillID       uint64         `gorm:"column:skill_id;not null;index"`
	Skill         *Skill         `gorm:"foreignKey:SkillID"`
	Message       *string        `gorm:"type:text"`
	Status        ExchangeStatus `gorm:"size:20;not null;default:'pending';index"`
	ScheduledDate *time.Time     `gorm:"column:scheduled_date"`
	CompletedAt   *time.Time     `gorm:"column:completed_at"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (ExchangeRequest) TableName() string {
	return "skill_exchange_requests"
}

// IsParticipant reports whether uid is the requester or the owner of the requested skill.
// Skill must be loaded.
func (r ExchangeRequest) IsParticipant(uid string) bool {
	if uid == "" {
		return false
	}
	return r.RequesterID == uid || r.OwnerID() == uid
}

// OwnerID returns the owner of the requested skill. Skill must be loaded.
func (r ExchangeRequest) OwnerID() string {
	if r.Skill == nil {
		return ""
	}
	return r.Skill.UserID
}

// Counterpart returns the other participant of the exchange, or "" when uid is not one.
func (r ExchangeRequest) Counterpart(uid string) string {
	owner := r.OwnerID()
	if owner == "" {
		return ""
	}
	switch uid {
	case r.RequesterID:
		return owner
	case owner:
		return r.RequesterID
	}
	return ""
}
