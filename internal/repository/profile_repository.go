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
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
)

// ProfileRepository отвечает за таблицу profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create создаёт профиль. Второй профиль того же студента отклоняется
// ограничением уникальности.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO profiles (student_id, name, bio, photo_url, skills_offered, skills_wanted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, profile.StudentID, profile.Name, profile.Bio, profile.PhotoURL, profile.SkillsOffered, profile.SkillsWanted,
	).Scan(&profile.ID)
	if err != nil {
		if common.IsUniqueViolation(err, "profiles_student_id_key") {
			return ErrProfileExists
		}
		return fmt.Errorf("profile repository: create: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByStudent(ctx context.Context, studentID int64) (*models.Profile, error) {
	return common.GetByField[models.Profile](ctx, r.db, "profiles", "student_id", studentID, ErrProfileNotFound)
}

// Update перезаписывает поля профиля студента.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	err := r.db.GetContext(ctx, profile, `
		UPDATE profiles
		SET name = $2, bio = $3, photo_url = $4, skills_offered = $5, skills_wanted = $6
		WHERE student_id = $1
		RETURNING *
	`, profile.StudentID, profile.Name, profile.Bio, profile.PhotoURL, profile.SkillsOffered, profile.SkillsWanted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("profile repository: update: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, studentID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE student_id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("profile repository: delete: %w", err)
	}
	return common.RequireAffected(res, ErrProfileNotFound)
}
