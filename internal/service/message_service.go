package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
)

const maxMessageLength = 5000

type MessageInput struct {
	ReceiverID        string
	Content           string
	ExchangeRequestID *uint64
}

type MessageService interface {
	Transcript(ctx context.Context, uid, otherID string) ([]model.Message, error)
	Conversations(ctx context.Context, uid string) ([]model.Conversation, error)
	Send(ctx context.Context, uid string, in MessageInput) (*model.Message, error)
	MarkRead(ctx context.Context, uid, senderID string) (int64, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	requests repository.ExchangeRequestRepository
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, requests repository.ExchangeRequestRepository) MessageService {
	return &messageService{messages: messages, users: users, requests: requests}
}

func (s *messageService) Transcript(ctx context.Context, uid, otherID string) ([]model.Message, error) {
	return s.messages.ListBetween(ctx, uid, strings.TrimSpace(otherID))
}

func (s *messageService) Conversations(ctx context.Context, uid string) ([]model.Conversation, error) {
	return s.messages.ListConversations(ctx, uid)
}

// Send delivers a message to any existing user. An exchange link is optional context, but the
// sender must take part in that exchange.
func (s *messageService) Send(ctx context.Context, uid string, in MessageInput) (*model.Message, error) {
	receiverID := strings.TrimSpace(in.ReceiverID)
	if receiverID == uid {
		return nil, ErrSelfMessage
	}
	content := cleanText(in.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > maxMessageLength {
		return nil, fmt.Errorf("%w: content exceeds %d bytes", ErrInvalidInput, maxMessageLength)
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		return nil, notFound(err)
	}
	if in.ExchangeRequestID != nil {
		req, err := s.requests.FindByID(ctx, *in.ExchangeRequestID)
		if err != nil {
			return nil, notFound(err)
		}
		if !req.IsParticipant(uid) {
			return nil, ErrForbidden
		}
	}

	msg := &model.Message{
		SenderID:          uid,
		ReceiverID:        receiverID,
		ExchangeRequestID: in.ExchangeRequestID,
		Content:           content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// MarkRead flags everything senderID sent to uid as read and returns how many rows flipped.
func (s *messageService) MarkRead(ctx context.Context, uid, senderID string) (int64, error) {
	return s.messages.MarkRead(ctx, uid, strings.TrimSpace(senderID))
}
