package model

// Conversation is a read model: one entry per correspondent, built from messages.
type Conversation struct {
	User        *User
	LastMessage Message
	UnreadCount int64
}

func (c Conversation) HasUnread() bool {
	return c.UnreadCount > 0
}
