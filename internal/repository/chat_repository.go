package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/repository/common"
)

// ErrChatNotFound возвращается, когда чат не найден.
var ErrChatNotFound = errors.New("chat not found")

// ChatRepository отвечает за чаты, их участников и чтение сообщений.
type ChatRepository struct {
	db *sqlx.DB
}

// NewChatRepository создаёт экземпляр репозитория.
func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create сохраняет чат, его участников и уведомления одной транзакцией.
// Повторная пара (chat, student) пропускается ограничением уникальности.
// После успеха ChatID проставлен участникам и уведомлениям.
func (r *ChatRepository) Create(ctx context.Context, chat *models.Chat, participants []models.ChatParticipant, notifications []models.Notification) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx, `
			INSERT INTO chats (listing_id) VALUES ($1)
			RETURNING id, started_at, completed
		`, chat.ListingID).Scan(&chat.ID, &chat.StartedAt, &chat.Completed); err != nil {
			return fmt.Errorf("chat repository: create: %w", err)
		}

		inserter := common.NewBatchInserter(tx,
			`INSERT INTO chat_participants (chat_id, student_id, role)`, 3, len(participants),
		).WithSuffix("ON CONFLICT (chat_id, student_id) DO NOTHING")
		for i := range participants {
			participants[i].ChatID = chat.ID
			if err := inserter.Add(ctx, chat.ID, participants[i].StudentID, participants[i].Role); err != nil {
				return fmt.Errorf("chat repository: add participant: %w", err)
			}
		}
		if err := inserter.Flush(ctx); err != nil {
			return fmt.Errorf("chat repository: add participants: %w", err)
		}

		chatID := chat.ID
		for i := range notifications {
			notifications[i].ChatID = &chatID
		}
		return insertNotifications(ctx, tx, notifications)
	})
}

// GetByID возвращает чат без участников и сообщений.
func (r *ChatRepository) GetByID(ctx context.Context, id int64) (*models.Chat, error) {
	return common.GetByID[models.Chat](ctx, r.db, "chats", id, ErrChatNotFound)
}

// GetDetail возвращает чат с участниками и сообщениями в порядке отправки.
func (r *ChatRepository) GetDetail(ctx context.Context, id int64) (*models.ChatDetail, error) {
	chat, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.ChatDetail{Chat: *chat, Participants: []models.ChatParticipant{}, Messages: []models.Message{}}
	if err := r.db.SelectContext(ctx, &detail.Participants, `
		SELECT * FROM chat_participants WHERE chat_id = $1 ORDER BY id
	`, id); err != nil {
		return nil, fmt.Errorf("chat repository: list participants: %w", err)
	}
	if err := r.db.SelectContext(ctx, &detail.Messages, `
		SELECT * FROM messages WHERE chat_id = $1 ORDER BY sent_at, id
	`, id); err != nil {
		return nil, fmt.Errorf("chat repository: list messages: %w", err)
	}

	return detail, nil
}

// ListByStudent возвращает чаты, где студент участвует, новые первыми.
func (r *ChatRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Chat, error) {
	chats := []models.Chat{}
	if err := r.db.SelectContext(ctx, &chats, `
		SELECT c.* FROM chats c
		JOIN chat_participants p ON p.chat_id = c.id
		WHERE p.student_id = $1
		ORDER BY c.started_at DESC, c.id DESC
	`, studentID); err != nil {
		return nil, fmt.Errorf("chat repository: list by student: %w", err)
	}
	return chats, nil
}

// MarkCompleted переводит чат в завершённое состояние. Уведомления
// сохраняются только если чат был открыт; возвращает, изменился ли чат.
func (r *ChatRepository) MarkCompleted(ctx context.Context, chatID int64, notifications []models.Notification) (bool, error) {
	changed := false
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE chats SET completed = TRUE WHERE id = $1 AND completed = FALSE`, chatID)
		if err != nil {
			return fmt.Errorf("chat repository: mark completed: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("chat repository: mark completed rows affected: %w", err)
		}
		if n == 0 {
			return nil
		}

		changed = true
		return insertNotifications(ctx, tx, notifications)
	})
	if err != nil {
		return false, err
	}

	return changed, nil
}
