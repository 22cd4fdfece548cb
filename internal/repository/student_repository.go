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

var (
	// ErrStudentNotFound возвращается, когда студент не найден.
	ErrStudentNotFound = errors.New("student not found")
	// ErrStudentExists возвращается при повторной регистрации email.
	ErrStudentExists = errors.New("student already exists")
	// ErrTokenNotFound возвращается, когда токен верификации не найден.
	ErrTokenNotFound = errors.New("verification token not found")
)

// StudentRepository отвечает за таблицы students и verification_tokens.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository создаёт экземпляр репозитория.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// CreateWithToken создаёт неподтверждённого студента вместе с токеном
// верификации в одной транзакции.
func (r *StudentRepository) CreateWithToken(ctx context.Context, student *models.Student, token *models.VerificationToken) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO students (email, password_hash, verified, api_key)
			VALUES ($1, $2, $3, $4)
			RETURNING id, is_admin, created_at
		`, student.Email, student.PasswordHash, student.Verified, student.APIKey,
		).Scan(&student.ID, &student.IsAdmin, &student.CreatedAt)
		if err != nil {
			if common.IsUniqueViolation(err, "students_email_key") {
				return ErrStudentExists
			}
			return fmt.Errorf("student repository: create: %w", err)
		}

		token.StudentID = student.ID
		if err := tx.QueryRowxContext(ctx, `
			INSERT INTO verification_tokens (token, student_id, expires_at)
			VALUES ($1, $2, $3)
			RETURNING id
		`, token.Token, token.StudentID, token.ExpiresAt).Scan(&token.ID); err != nil {
			return fmt.Errorf("student repository: create token: %w", err)
		}

		return nil
	})
}

// GetByEmail возвращает студента по email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return common.GetByField[models.Student](ctx, r.db, "students", "email", email, ErrStudentNotFound)
}

// GetByAPIKey возвращает студента по ключу доступа.
func (r *StudentRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.Student, error) {
	return common.GetByField[models.Student](ctx, r.db, "students", "api_key", apiKey, ErrStudentNotFound)
}

// GetToken возвращает токен верификации.
func (r *StudentRepository) GetToken(ctx context.Context, token string) (*models.VerificationToken, error) {
	var vt models.VerificationToken
	if err := r.db.GetContext(ctx, &vt, `SELECT * FROM verification_tokens WHERE token = $1`, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("student repository: get token: %w", err)
	}

	return &vt, nil
}

// Activate подтверждает студента и удаляет использованный токен.
func (r *StudentRepository) Activate(ctx context.Context, token *models.VerificationToken) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE students SET verified = TRUE WHERE id = $1`, token.StudentID); err != nil {
			return fmt.Errorf("student repository: activate: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM verification_tokens WHERE id = $1`, token.ID)
		if err != nil {
			return fmt.Errorf("student repository: delete token: %w", err)
		}
		// Токен мог быть использован параллельным запросом.
		return common.RequireAffected(res, ErrTokenNotFound)
	})
}
