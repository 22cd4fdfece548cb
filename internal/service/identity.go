package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

// IdentityResolver переводит ключ доступа в личность вызывающего.
// Все сервисы получают его через конструктор.
type IdentityResolver interface {
	ResolveStudent(ctx context.Context, credential string) (*models.Student, error)
	IsAdministrator(ctx context.Context, credential string) (bool, error)
	ResolveAdministrator(ctx context.Context, credential string) (*models.Administrator, error)
	ListingOwner(ctx context.Context, listingID int64) (*models.Listing, error)
}

type StudentLookup interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*models.Student, error)
}

type AdministratorLookup interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*models.Administrator, error)
}

type ListingLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Listing, error)
}

// Identity реализует IdentityResolver поверх репозиториев.
type Identity struct {
	students StudentLookup
	admins   AdministratorLookup
	listings ListingLookup
}

// NewIdentity создаёт резолвер личности.
func NewIdentity(students StudentLookup, admins AdministratorLookup, listings ListingLookup) *Identity {
	return &Identity{students: students, admins: admins, listings: listings}
}

// ResolveStudent возвращает студента по ключу. Пустой ключ и неизвестный
// ключ различаются кодом ошибки.
func (i *Identity) ResolveStudent(ctx context.Context, credential string) (*models.Student, error) {
	if credential == "" {
		return nil, apperror.ErrMissingCredential
	}

	student, err := i.students.GetByAPIKey(ctx, credential)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return nil, apperror.ErrInvalidCredential
		}
		return nil, fmt.Errorf("identity: resolve student: %w", err)
	}

	return student, nil
}

// IsAdministrator сообщает, принадлежит ли ключ администратору. Студент с
// флагом is_admin тоже считается администратором.
func (i *Identity) IsAdministrator(ctx context.Context, credential string) (bool, error) {
	if credential == "" {
		return false, nil
	}

	if _, err := i.admins.GetByAPIKey(ctx, credential); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrAdministratorNotFound) {
		return false, fmt.Errorf("identity: lookup administrator: %w", err)
	}

	student, err := i.students.GetByAPIKey(ctx, credential)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("identity: lookup student: %w", err)
	}

	return student.IsAdmin, nil
}

// ResolveAdministrator возвращает администратора; любой другой ключ
// означает отсутствие прав модератора.
func (i *Identity) ResolveAdministrator(ctx context.Context, credential string) (*models.Administrator, error) {
	if credential == "" {
		return nil, apperror.ErrNotModerator
	}

	admin, err := i.admins.GetByAPIKey(ctx, credential)
	if err != nil {
		if errors.Is(err, repository.ErrAdministratorNotFound) {
			return nil, apperror.ErrNotModerator
		}
		return nil, fmt.Errorf("identity: resolve administrator: %w", err)
	}

	return admin, nil
}

// ListingOwner возвращает публикацию вместе с владельцем (StudentID).
func (i *Identity) ListingOwner(ctx context.Context, listingID int64) (*models.Listing, error) {
	listing, err := i.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, fmt.Errorf("identity: listing owner: %w", err)
	}

	return listing, nil
}
