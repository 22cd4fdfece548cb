package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/repository/common"
)

var (
	ErrAdministratorNotFound = errors.New("administrator not found")
	ErrAdministratorExists   = errors.New("administrator already exists")
	ErrAPIKeyTaken           = errors.New("api key already taken")
)

type AdministratorRepository struct {
	db *sqlx.DB
}

func NewAdministratorRepository(db *sqlx.DB) *AdministratorRepository {
	return &AdministratorRepository{db: db}
}

// Create сохраняет администратора. Коллизия ключа возвращает ErrAPIKeyTaken,
// чтобы вызывающий мог сгенерировать новый.
func (r *AdministratorRepository) Create(ctx context.Context, admin *models.Administrator) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO administrators (name, email, password_hash, api_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, admin.Name, admin.Email, admin.PasswordHash, admin.APIKey).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		switch {
		case common.IsUniqueViolation(err, "administrators_api_key_key"):
			return ErrAPIKeyTaken
		case common.IsUniqueViolation(err, "administrators_email_key"):
			return ErrAdministratorExists
		}
		return fmt.Errorf("administrator repository: create: %w", err)
	}

	return nil
}

// APIKeyExists проверяет, занят ли ключ другим администратором.
func (r *AdministratorRepository) APIKeyExists(ctx context.Context, apiKey string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM administrators WHERE api_key = $1)`, apiKey); err != nil {
		return false, fmt.Errorf("administrator repository: api key exists: %w", err)
	}
	return exists, nil
}

func (r *AdministratorRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.Administrator, error) {
	return common.GetByField[models.Administrator](ctx, r.db, "administrators", "api_key", apiKey, ErrAdministratorNotFound)
}
