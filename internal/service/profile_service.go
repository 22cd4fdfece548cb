package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByStudent(ctx context.Context, studentID int64) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, studentID int64) error
}

// ProfileInput поля профиля. nil означает "не менять".
type ProfileInput struct {
	Name          *string
	Bio           *string
	PhotoURL      *string
	SkillsOffered *string
	SkillsWanted  *string
}

var errProfileExists = apperror.New(apperror.ErrCodeAlreadyExists, "El perfil ya existe")

type ProfileService struct {
	identity IdentityResolver
	repo     ProfileRepository
}

func NewProfileService(identity IdentityResolver, repo ProfileRepository) *ProfileService {
	return &ProfileService{identity: identity, repo: repo}
}

// Create создаёт профиль вызывающего. Второй профиль запрещён.
func (s *ProfileService) Create(ctx context.Context, credential string, in ProfileInput) (*models.Profile, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{StudentID: student.ID, Name: models.DefaultProfileName}
	if err := applyProfileInput(profile, in); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrProfileExists) {
			return nil, errProfileExists
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, credential string) (*models.Profile, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, student.ID)
}

// Update применяет переданные поля к профилю вызывающего.
func (s *ProfileService) Update(ctx context.Context, credential string, in ProfileInput) (*models.Profile, error) {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	profile, err := s.load(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if err := applyProfileInput(profile, in); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Delete(ctx context.Context, credential string) error {
	student, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, student.ID); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return apperror.ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (s *ProfileService) load(ctx context.Context, studentID int64) (*models.Profile, error) {
	profile, err := s.repo.GetByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func applyProfileInput(profile *models.Profile, in ProfileInput) error {
	invalid := func(err error) error { return apperror.New(apperror.ErrCodeInvalidInput, err.Error()) }

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			name = models.DefaultProfileName
		}
		if err := validation.ValidateProfileName(name); err != nil {
			return invalid(err)
		}
		profile.Name = name
	}
	if in.PhotoURL != nil {
		if err := validation.ValidatePhotoURL(in.PhotoURL); err != nil {
			return invalid(err)
		}
		profile.PhotoURL = in.PhotoURL
	}
	if in.Bio != nil {
		profile.Bio = in.Bio
	}
	if in.SkillsOffered != nil {
		profile.SkillsOffered = in.SkillsOffered
	}
	if in.SkillsWanted != nil {
		profile.SkillsWanted = in.SkillsWanted
	}
	return nil
}
