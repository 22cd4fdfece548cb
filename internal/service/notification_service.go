package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

// NotificationRepository описывает взаимодействие сервиса с хранилищем уведомлений.
type NotificationRepository interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, studentID int64) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, studentID int64) (int64, error)
	CountUnread(ctx context.Context, studentID int64) (int, error)
}

// NotificationPusher доставляет уведомления подключённым клиентам.
type NotificationPusher interface {
	BroadcastToStudent(studentID int64, event string, data interface{})
}

// NotificationRefs ссылки уведомления на связанные сущности.
type NotificationRefs struct {
	ChatID    *int64
	ListingID *int64
	RatingID  *int64
}

// NotificationService строит записи уведомлений для транзакций других
// сервисов и обслуживает чтение и отметку прочитанного.
type NotificationService struct {
	identity IdentityResolver
	repo     NotificationRepository
	pusher   NotificationPusher
}

// NewNotificationService создаёт новый сервис уведомлений. pusher может быть nil.
func NewNotificationService(identity IdentityResolver, repo NotificationRepository, pusher NotificationPusher) *NotificationService {
	return &NotificationService{identity: identity, repo: repo, pusher: pusher}
}

// Notify строит одно непрочитанное уведомление. Запись сохраняется
// репозиторием в транзакции вызывающей операции.
func (s *NotificationService) Notify(studentID int64, typ models.NotificationType, message string, refs NotificationRefs) (models.Notification, error) {
	if !typ.Valid() {
		return models.Notification{}, fmt.Errorf("notification service: unknown type %q", typ)
	}

	return models.Notification{
		StudentID: studentID,
		Type:      typ,
		Message:   message,
		ChatID:    refs.ChatID,
		ListingID: refs.ListingID,
		RatingID:  refs.RatingID,
	}, nil
}

// Fanout строит по уведомлению на каждого участника, кроме exclude.
func (s *NotificationService) Fanout(participants []models.ChatParticipant, exclude int64, typ models.NotificationType, message string, refs NotificationRefs) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0, len(participants))
	for _, p := range participants {
		if p.StudentID == exclude {
			continue
		}
		n, err := s.Notify(p.StudentID, typ, message, refs)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// Publish отправляет сохранённые уведомления по WebSocket. Ошибки доставки
// не влияют на результат операции.
func (s *NotificationService) Publish(notifications []models.Notification) {
	if s.pusher == nil {
		return
	}

	for _, n := range notifications {
		s.pusher.BroadcastToStudent(n.StudentID, string(n.Type), n)
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"student_id":      n.StudentID,
				"notification_id": n.ID,
				"type":            n.Type,
			}).Debug("notification pushed")
		}
	}
}

// ListNotifications возвращает уведомления вызывающего, новые первыми.
func (s *NotificationService) ListNotifications(ctx context.Context, credential string) ([]models.Notification, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByStudent(ctx, student.ID)
}

// MarkRead отмечает уведомление прочитанным. Чужое уведомление
// возвращает NotFound.
func (s *NotificationService) MarkRead(ctx context.Context, credential string, id int64) (*models.Notification, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	notification, err := s.repo.MarkAsRead(ctx, id, student.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, apperror.ErrNotificationNotFound
		}
		return nil, err
	}

	return notification, nil
}

// MarkAllRead отмечает все уведомления вызывающего прочитанными.
func (s *NotificationService) MarkAllRead(ctx context.Context, credential string) (int64, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return 0, err
	}

	return s.repo.MarkAllAsRead(ctx, student.ID)
}

// CountUnread возвращает количество непрочитанных уведомлений.
func (s *NotificationService) CountUnread(ctx context.Context, credential string) (int, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return 0, err
	}

	return s.repo.CountUnread(ctx, student.ID)
}
