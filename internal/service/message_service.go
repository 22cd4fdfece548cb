package service

import (
	"context"
	"fmt"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message, notifications []models.Notification) error
}

// MessageService добавляет сообщения в чаты.
type MessageService struct {
	identity IdentityResolver
	chats    ChatRepository
	messages MessageRepository
	notifier *NotificationService
}

func NewMessageService(identity IdentityResolver, chats ChatRepository, messages MessageRepository, notifier *NotificationService) *MessageService {
	return &MessageService{identity: identity, chats: chats, messages: messages, notifier: notifier}
}

// SendMessage сохраняет сообщение и уведомляет остальных участников.
// Завершённый чат сообщения принимает.
func (s *MessageService) SendMessage(ctx context.Context, credential string, chatID int64, text string) (*models.Message, error) {
	sender, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	detail, err := loadChatDetail(ctx, s.chats, chatID)
	if err != nil {
		return nil, err
	}

	if _, ok := detail.Participant(sender.ID); !ok {
		return nil, apperror.ErrNotParticipant
	}

	if err := validation.ValidateMessageText(text); err != nil {
		return nil, apperror.New(apperror.ErrCodeInvalidInput, err.Error())
	}

	cid := detail.ID
	notifications, err := s.notifier.Fanout(detail.Participants, sender.ID, models.NotificationNewMessage,
		fmt.Sprintf("Nuevo mensaje en el chat %d", detail.ID),
		NotificationRefs{ChatID: &cid},
	)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{ChatID: detail.ID, StudentID: sender.ID, Text: text}
	if err := s.messages.Create(ctx, msg, notifications); err != nil {
		return nil, err
	}
	s.notifier.Publish(notifications)

	return msg, nil
}
