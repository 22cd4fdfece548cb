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

var ErrReportNotFound = errors.New("report not found")

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.QueryRowxContext(ctx, `
		INSERT INTO reports (reason, student_id, listing_id)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at
	`, report.Reason, report.StudentID, report.ListingID).
		Scan(&report.ID, &report.Status, &report.CreatedAt); err != nil {
		return fmt.Errorf("report repository: create: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	return common.GetByID[models.Report](ctx, r.db, "reports", id, ErrReportNotFound)
}

func (r *ReportRepository) List(ctx context.Context) ([]models.Report, error) {
	reports := []models.Report{}
	if err := r.db.SelectContext(ctx, &reports, `SELECT * FROM reports ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("report repository: list: %w", err)
	}
	return reports, nil
}

// Moderate записывает решение администратора. При removeListing публикация
// снимается с показа в той же транзакции.
func (r *ReportRepository) Moderate(ctx context.Context, report *models.Report, removeListing bool) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if removeListing {
			if err := deactivateListing(ctx, tx, report.ListingID); err != nil {
				return err
			}
		}

		err := tx.GetContext(ctx, report, `
			UPDATE reports SET status = $2, administrator_id = $3
			WHERE id = $1
			RETURNING *
		`, report.ID, report.Status, report.AdministratorID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReportNotFound
			}
			return fmt.Errorf("report repository: moderate: %w", err)
		}
		return nil
	})
}
