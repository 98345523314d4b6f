package model

import "time"

// Message is immutable apart from IsRead, which only the receiver flips.
type Message struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	SenderID          string    `gorm:"column:sender_id;size:128;not null;index:idx_messages_pair,priority:1"`
	Sender            *User     `gorm:"foreignKey:SenderID"`
	ReceiverID        string    `gorm:"column:receiver_id;size:128;not null;index:idx_messages_pair,priority:2;index:idx_messages_unread,priority:1"`
	Receiver          *User     `gorm:"foreignKey:ReceiverID"`
	ExchangeRequestID *uint64   `gorm:"column:exchange_request_id;index"`
	Content           string    `gorm:"type:text;not null"`
	IsRead            bool      `gorm:"column:is_read;not null;default:false;index:idx_messages_unread,priority:2"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}

// Correspondent returns the other party of the message as seen by uid.
func (m Message) Correspondent(uid string) string {
	if m.SenderID == uid {
		return m.ReceiverID
	}
	return m.SenderID
}
