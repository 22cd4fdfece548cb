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

// ErrListingNotFound возвращается, когда публикация не найдена.
var ErrListingNotFound = errors.New("listing not found")

// ListingRepository отвечает за работу с публикациями.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository создаёт экземпляр репозитория.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create сохраняет новую публикацию.
func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (title, description, skill, student_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, active
	`

	if err := r.db.QueryRowxContext(ctx, query,
		listing.Title, listing.Description, listing.Skill, listing.StudentID,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.Active); err != nil {
		return fmt.Errorf("listing repository: create: %w", err)
	}

	return nil
}

// GetByID возвращает публикацию, в том числе неактивную.
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	return common.GetByID[models.Listing](ctx, r.db, "listings", id, ErrListingNotFound)
}

// List возвращает активные публикации, новые первыми.
func (r *ListingRepository) List(ctx context.Context) ([]models.Listing, error) {
	listings := []models.Listing{}
	if err := r.db.SelectContext(ctx, &listings, `
		SELECT * FROM listings WHERE active = TRUE ORDER BY created_at DESC, id DESC
	`); err != nil {
		return nil, fmt.Errorf("listing repository: list: %w", err)
	}
	return listings, nil
}

// ListByStudent возвращает все публикации студента.
func (r *ListingRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Listing, error) {
	listings := []models.Listing{}
	if err := r.db.SelectContext(ctx, &listings, `
		SELECT * FROM listings WHERE student_id = $1 ORDER BY created_at DESC, id DESC
	`, studentID); err != nil {
		return nil, fmt.Errorf("listing repository: list by student: %w", err)
	}
	return listings, nil
}

// Update сохраняет изменяемые поля публикации.
func (r *ListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	err := r.db.GetContext(ctx, listing, `
		UPDATE listings SET title = $2, description = $3, skill = $4, active = $5
		WHERE id = $1
		RETURNING *
	`, listing.ID, listing.Title, listing.Description, listing.Skill, listing.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrListingNotFound
		}
		return fmt.Errorf("listing repository: update: %w", err)
	}
	return nil
}

// Deactivate снимает публикацию с показа.
func (r *ListingRepository) Deactivate(ctx context.Context, id int64) error {
	return deactivateListing(ctx, r.db, id)
}

func deactivateListing(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	res, err := db.ExecContext(ctx, `UPDATE listings SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("listing repository: deactivate: %w", err)
	}
	return common.RequireAffected(res, ErrListingNotFound)
}
