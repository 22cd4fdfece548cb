package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/models"
)

// ErrNotificationNotFound возвращается, когда уведомление не найдено.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository отвечает за работу с уведомлениями.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository создаёт экземпляр репозитория.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// insertNotifications сохраняет уведомления в рамках транзакции вызывающего
// и заполняет ID и CreatedAt.
func insertNotifications(ctx context.Context, tx *sqlx.Tx, notifications []models.Notification) error {
	query := `
		INSERT INTO notifications (student_id, type, message, chat_id, listing_id, rating_id, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	for i := range notifications {
		n := &notifications[i]
		if !n.Type.Valid() {
			return fmt.Errorf("notification repository: unknown type %q", n.Type)
		}
		if err := tx.QueryRowxContext(ctx, query,
			n.StudentID, n.Type, n.Message, n.ChatID, n.ListingID, n.RatingID, n.Read,
		).Scan(&n.ID, &n.CreatedAt); err != nil {
			return fmt.Errorf("notification repository: create: %w", err)
		}
	}

	return nil
}

// ListByStudent возвращает уведомления студента, новые первыми.
func (r *NotificationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Notification, error) {
	notifications := []models.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications WHERE student_id = $1 ORDER BY created_at DESC, id DESC
	`, studentID); err != nil {
		return nil, fmt.Errorf("notification repository: list: %w", err)
	}

	return notifications, nil
}

// MarkAsRead отмечает уведомление студента как прочитанное и возвращает его.
// Чужое уведомление неотличимо от отсутствующего.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, studentID int64) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.GetContext(ctx, &notification, `
		UPDATE notifications SET read = TRUE
		WHERE id = $1 AND student_id = $2
		RETURNING *
	`, id, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("notification repository: mark as read: %w", err)
	}

	return &notification, nil
}

// MarkAllAsRead отмечает все уведомления студента как прочитанные.
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, studentID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE student_id = $1 AND read = FALSE`, studentID)
	if err != nil {
		return 0, fmt.Errorf("notification repository: mark all as read: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("notification repository: mark all as read rows affected: %w", err)
	}

	return n, nil
}

// CountUnread возвращает количество непрочитанных уведомлений студента.
func (r *NotificationRepository) CountUnread(ctx context.Context, studentID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE student_id = $1 AND read = FALSE`, studentID); err != nil {
		return 0, fmt.Errorf("notification repository: count unread: %w", err)
	}

	return count, nil
}
