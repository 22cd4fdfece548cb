package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/repository/common"
)

type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create сохраняет сообщение и уведомления для остальных участников
// одной транзакцией.
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message, notifications []models.Notification) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx, `
			INSERT INTO messages (text, chat_id, student_id)
			VALUES ($1, $2, $3)
			RETURNING id, sent_at, read
		`, msg.Text, msg.ChatID, msg.StudentID).Scan(&msg.ID, &msg.SentAt, &msg.Read); err != nil {
			return fmt.Errorf("message repository: create: %w", err)
		}

		return insertNotifications(ctx, tx, notifications)
	})
}
