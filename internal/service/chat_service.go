package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

// ChatRepository описывает хранилище чатов.
type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat, participants []models.ChatParticipant, notifications []models.Notification) error
	GetDetail(ctx context.Context, id int64) (*models.ChatDetail, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Chat, error)
	MarkCompleted(ctx context.Context, chatID int64, notifications []models.Notification) (bool, error)
}

// ChatService управляет жизненным циклом обмена: открытие чата и завершение.
type ChatService struct {
	identity IdentityResolver
	chats    ChatRepository
	notifier *NotificationService
}

// NewChatService создаёт сервис чатов.
func NewChatService(identity IdentityResolver, chats ChatRepository, notifier *NotificationService) *ChatService {
	return &ChatService{identity: identity, chats: chats, notifier: notifier}
}

// CreateChat открывает чат по публикации. Вызывающий становится receptor,
// владелец публикации autor и получает уведомление nuevo_chat.
func (s *ChatService) CreateChat(ctx context.Context, credential string, listingID int64) (*models.ChatDetail, error) {
	receiver, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	listing, err := s.identity.ListingOwner(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.Active {
		return nil, apperror.ErrListingNotFound
	}

	if listing.StudentID == receiver.ID {
		return nil, apperror.ErrSelfChat
	}

	participants := []models.ChatParticipant{
		{StudentID: listing.StudentID, Role: models.RoleAuthor},
		{StudentID: receiver.ID, Role: models.RoleReceiver},
	}

	lid := listing.ID
	note, err := s.notifier.Notify(listing.StudentID, models.NotificationNewChat,
		fmt.Sprintf("Nuevo chat sobre tu publicación %d", listing.ID),
		NotificationRefs{ListingID: &lid},
	)
	if err != nil {
		return nil, err
	}
	notifications := []models.Notification{note}

	chat := &models.Chat{ListingID: listing.ID}
	if err := s.chats.Create(ctx, chat, participants, notifications); err != nil {
		return nil, err
	}
	s.notifier.Publish(notifications)

	return loadChatDetail(ctx, s.chats, chat.ID)
}

// CompleteExchange завершает обмен. Доступно только автору; повторный
// вызов на завершённом чате ничего не меняет и уведомлений не создаёт.
func (s *ChatService) CompleteExchange(ctx context.Context, credential string, chatID int64) (*models.ChatDetail, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	detail, err := loadChatDetail(ctx, s.chats, chatID)
	if err != nil {
		return nil, err
	}

	p, ok := detail.Participant(student.ID)
	if !ok || p.Role != models.RoleAuthor {
		return nil, apperror.ErrNotChatAuthor
	}

	cid := detail.ID
	notifications, err := s.notifier.Fanout(detail.Participants, student.ID, models.NotificationExchangeCompleted,
		fmt.Sprintf("El autor ha marcado el chat %d como completado.", detail.ID),
		NotificationRefs{ChatID: &cid},
	)
	if err != nil {
		return nil, err
	}

	changed, err := s.chats.MarkCompleted(ctx, detail.ID, notifications)
	if err != nil {
		return nil, err
	}
	if changed {
		s.notifier.Publish(notifications)
	}

	detail.Completed = true
	return detail, nil
}

// GetChat возвращает чат участнику.
func (s *ChatService) GetChat(ctx context.Context, credential string, chatID int64) (*models.ChatDetail, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	detail, err := loadChatDetail(ctx, s.chats, chatID)
	if err != nil {
		return nil, err
	}

	if _, ok := detail.Participant(student.ID); !ok {
		return nil, apperror.ErrNotAuthorized
	}

	return detail, nil
}

// ListMyChats возвращает чаты, где участвует вызывающий.
func (s *ChatService) ListMyChats(ctx context.Context, credential string) ([]models.Chat, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	return s.chats.ListByStudent(ctx, student.ID)
}

func loadChatDetail(ctx context.Context, chats ChatRepository, chatID int64) (*models.ChatDetail, error) {
	detail, err := chats.GetDetail(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return nil, apperror.ErrChatNotFound
		}
		return nil, err
	}
	return detail, nil
}
