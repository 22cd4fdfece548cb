package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/repository/common"
)

// ErrRatingExists возвращается при повторной оценке чата тем же участником.
var ErrRatingExists = errors.New("rating already exists")

type RatingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create сохраняет оценку, отмечает участника как оценившего и сохраняет
// уведомления со ссылкой на оценку. Гонку двух оценок решает UNIQUE.
func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating, notifications []models.Notification) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO chat_ratings (chat_id, evaluator_id, score, comment)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, rating.ChatID, rating.EvaluatorID, rating.Score, rating.Comment).Scan(&rating.ID, &rating.CreatedAt)
		if err != nil {
			if common.IsUniqueViolation(err, "chat_ratings_chat_evaluator_key") {
				return ErrRatingExists
			}
			return fmt.Errorf("rating repository: create: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE chat_participants SET rated = TRUE WHERE chat_id = $1 AND student_id = $2
		`, rating.ChatID, rating.EvaluatorID); err != nil {
			return fmt.Errorf("rating repository: mark rated: %w", err)
		}

		ratingID := rating.ID
		for i := range notifications {
			notifications[i].RatingID = &ratingID
		}
		return insertNotifications(ctx, tx, notifications)
	})
}

// GetByChatAndEvaluator возвращает оценку или nil, если её нет.
func (r *RatingRepository) GetByChatAndEvaluator(ctx context.Context, chatID, evaluatorID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.GetContext(ctx, &rating, `SELECT * FROM chat_ratings WHERE chat_id = $1 AND evaluator_id = $2`, chatID, evaluatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("rating repository: get: %w", err)
	}
	return &rating, nil
}
