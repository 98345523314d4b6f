package repository

import (
	"context"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"gorm.io/gorm"
)

type MessageRepository interface {
	ListBetween(ctx context.Context, uid, otherID string) ([]model.Message, error)
	ListConversations(ctx context.Context, uid string) ([]model.Conversation, error)
	Create(ctx context.Context, msg *model.Message) error
	MarkRead(ctx context.Context, receiverID, senderID string) (int64, error)
	SetDB(db *gorm.DB)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) SetDB(db *gorm.DB) {
	r.db = db
}

// ListBetween returns the transcript between two users in reading order.
func (r *messageRepository) ListBetween(ctx context.Context, uid, otherID string) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", uid, otherID, otherID, uid).
		Order("created_at ASC").Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

type unreadRow struct {
	SenderID string
	Count    int64
}

func (r *messageRepository) ListConversations(ctx context.Context, uid string) ([]model.Conversation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", uid, uid).
		Order("created_at DESC").Order("id DESC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return []model.Conversation{}, nil
	}

	var rows []unreadRow
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("sender_id, COUNT(*) AS count").
		Where("receiver_id = ? AND is_read = ?", uid, false).
		Group("sender_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	unread := make(map[string]int64, len(rows))
	for _, row := range rows {
		unread[row.SenderID] = row.Count
	}

	convs := buildConversations(uid, msgs, unread)
	ids := make([]string, 0, len(convs))
	for _, c := range convs {
		ids = append(ids, c.LastMessage.Correspondent(uid))
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	out := convs[:0]
	for _, c := range convs {
		u, ok := byID[c.LastMessage.Correspondent(uid)]
		if !ok {
			continue
		}
		c.User = u
		out = append(out, c)
	}
	return out, nil
}

// buildConversations expects msgs newest first. The first message seen per correspondent is the
// latest one; unread holds the backlog of unread messages addressed to uid, keyed by sender.
func buildConversations(uid string, msgs []model.Message, unread map[string]int64) []model.Conversation {
	seen := make(map[string]bool)
	convs := make([]model.Conversation, 0)
	for _, m := range msgs {
		other := m.Correspondent(uid)
		if other == uid || seen[other] {
			continue
		}
		seen[other] = true
		convs = append(convs, model.Conversation{
			LastMessage: m,
			UnreadCount: unread[other],
		})
	}
	return convs
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Omit("Sender", "Receiver").Create(msg).Error
}

// MarkRead flags every unread message from senderID to receiverID as read. Repeated calls are no-ops.
func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
