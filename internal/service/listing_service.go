package service

import (
	"context"
	"errors"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

// ListingRepository описывает хранилище публикаций.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id int64) (*models.Listing, error)
	List(ctx context.Context) ([]models.Listing, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	Deactivate(ctx context.Context, id int64) error
}

// ListingInput поля публикации. nil означает "не менять" при частичном обновлении.
type ListingInput struct {
	Title       *string
	Description *string
	Skill       *int
	Active      *bool
}

var (
	errNotListingOwnerEdit   = apperror.New(apperror.ErrCodeForbidden, "No puedes editar publicaciones de otro estudiante")
	errNotListingOwnerDelete = apperror.New(apperror.ErrCodeForbidden, "No puedes eliminar publicaciones de otro estudiante")
)

// ListingService обслуживает публикации студентов.
type ListingService struct {
	identity IdentityResolver
	repo     ListingRepository
}

func NewListingService(identity IdentityResolver, repo ListingRepository) *ListingService {
	return &ListingService{identity: identity, repo: repo}
}

// Create публикует предложение навыка от имени вызывающего.
func (s *ListingService) Create(ctx context.Context, credential string, in ListingInput) (*models.Listing, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	listing := &models.Listing{StudentID: student.ID}
	if err := applyListingInput(listing, in, true); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) List(ctx context.Context) ([]models.Listing, error) {
	return s.repo.List(ctx)
}

func (s *ListingService) Get(ctx context.Context, id int64) (*models.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

// ListMine возвращает публикации вызывающего, включая снятые.
func (s *ListingService) ListMine(ctx context.Context, credential string) ([]models.Listing, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStudent(ctx, student.ID)
}

// Update меняет публикацию владельца. При partial пропущенные поля не трогаются,
// иначе обязательны все поля, как при создании.
func (s *ListingService) Update(ctx context.Context, credential string, id int64, in ListingInput, partial bool) (*models.Listing, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.StudentID != student.ID {
		return nil, errNotListingOwnerEdit
	}

	if err := applyListingInput(listing, in, !partial); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

// Delete снимает публикацию владельца с показа. Чаты и жалобы сохраняются.
func (s *ListingService) Delete(ctx context.Context, credential string, id int64) error {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return err
	}

	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if listing.StudentID != student.ID {
		return errNotListingOwnerDelete
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return apperror.ErrListingNotFound
		}
		return err
	}
	return nil
}

func applyListingInput(listing *models.Listing, in ListingInput, requireAll bool) error {
	invalid := func(msg string) error { return apperror.New(apperror.ErrCodeInvalidInput, msg) }

	if requireAll {
		switch {
		case in.Title == nil:
			return invalid("titulo es requerido.")
		case in.Description == nil:
			return invalid("descripcion es requerido.")
		case in.Skill == nil:
			return invalid("habilidad es requerido.")
		}
	}

	if in.Title != nil {
		if err := validation.ValidateListingTitle(*in.Title); err != nil {
			return invalid(err.Error())
		}
		listing.Title = *in.Title
	}
	if in.Description != nil {
		if err := validation.ValidateRequired("descripcion", *in.Description); err != nil {
			return invalid(err.Error())
		}
		listing.Description = *in.Description
	}
	if in.Skill != nil {
		listing.Skill = *in.Skill
	}
	if in.Active != nil {
		listing.Active = *in.Active
	}
	return nil
}
