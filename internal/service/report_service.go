package service

import (
	"context"
	"errors"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context) ([]models.Report, error)
	Moderate(ctx context.Context, report *models.Report, removeListing bool) error
}

var errInvalidModerationAction = apperror.New(apperror.ErrCodeInvalidInput, "accion debe ser aprobar, rechazar o eliminar.")

// ReportService обслуживает жалобы на публикации и их модерацию.
type ReportService struct {
	identity IdentityResolver
	repo     ReportRepository
}

func NewReportService(identity IdentityResolver, repo ReportRepository) *ReportService {
	return &ReportService{identity: identity, repo: repo}
}

// Create сохраняет жалобу студента на существующую публикацию.
func (s *ReportService) Create(ctx context.Context, credential string, listingID int64, reason string) (*models.Report, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateReportReason(reason); err != nil {
		return nil, apperror.New(apperror.ErrCodeInvalidInput, err.Error())
	}

	listing, err := s.identity.ListingOwner(ctx, listingID)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		Reason:    reason,
		StudentID: student.ID,
		ListingID: listing.ID,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List возвращает все жалобы. Только для администраторов.
func (s *ReportService) List(ctx context.Context, credential string) ([]models.Report, error) {
	ok, err := s.identity.IsAdministrator(ctx, credential)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrNotModerator
	}

	return s.repo.List(ctx)
}

// Moderate применяет решение администратора к жалобе:
// aprobar и eliminar принимают жалобу, eliminar ещё и снимает публикацию;
// rechazar отклоняет.
func (s *ReportService) Moderate(ctx context.Context, credential string, reportID int64, action string) (*models.Report, error) {
	admin, err := s.identity.ResolveAdministrator(ctx, credential)
	if err != nil {
		return nil, err
	}

	if _, ok := models.ValidModerationActions[action]; !ok {
		return nil, errInvalidModerationAction
	}

	report, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, err
	}

	status := models.ReportStatusAccepted
	if action == models.ModerationReject {
		status = models.ReportStatusRejected
	}
	adminID := admin.ID
	report.Status = status
	report.AdministratorID = &adminID

	if err := s.repo.Moderate(ctx, report, action == models.ModerationRemove); err != nil {
		switch {
		case errors.Is(err, repository.ErrReportNotFound):
			return nil, apperror.ErrReportNotFound
		case errors.Is(err, repository.ErrListingNotFound):
			return nil, apperror.ErrListingNotFound
		}
		return nil, err
	}
	return report, nil
}
