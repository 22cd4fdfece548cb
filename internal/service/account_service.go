package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

// StudentRepository описывает зависимости AccountService от хранилища студентов.
type StudentRepository interface {
	CreateWithToken(ctx context.Context, student *models.Student, token *models.VerificationToken) error
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetToken(ctx context.Context, token string) (*models.VerificationToken, error)
	Activate(ctx context.Context, token *models.VerificationToken) error
}

// AdministratorRepository описывает хранилище администраторов.
type AdministratorRepository interface {
	Create(ctx context.Context, admin *models.Administrator) error
	APIKeyExists(ctx context.Context, apiKey string) (bool, error)
}

const maxAdminKeyAttempts = 5

var (
	errPoliciesNotAccepted = apperror.New(apperror.ErrCodeInvalidInput, "Debe aceptar las políticas de uso para continuar.")
	errEmailTaken          = apperror.New(apperror.ErrCodeAlreadyExists, "Ya existe un estudiante con este email.")
	errInvalidToken        = apperror.New(apperror.ErrCodeInvalidInput, "Token inválido")
	errTokenExpired        = apperror.New(apperror.ErrCodeInvalidInput, "El token ha expirado")
)

// RegisterInput содержит данные студента при регистрации.
type RegisterInput struct {
	Email          string
	Password       string
	AcceptPolicies bool
}

// AccountService инкапсулирует регистрацию, активацию и вход.
type AccountService struct {
	students StudentRepository
	admins   AdministratorRepository
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAccountService создаёт сервис учётных записей.
func NewAccountService(students StudentRepository, admins AdministratorRepository, tokenTTL time.Duration) *AccountService {
	return &AccountService{
		students: students,
		admins:   admins,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Register создаёт неподтверждённого студента и токен верификации.
// Письмо не отправляется, токен возвращается вызывающему.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.Student, *models.VerificationToken, error) {
	if err := validation.ValidateInstitutionalEmail(in.Email); err != nil {
		return nil, nil, apperror.New(apperror.ErrCodeInvalidInput, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, nil, apperror.New(apperror.ErrCodeInvalidInput, err.Error())
	}
	if !in.AcceptPolicies {
		return nil, nil, errPoliciesNotAccepted
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("account service: не удалось захешировать пароль: %w", err)
	}

	student := &models.Student{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(passHash),
		APIKey:       newStudentAPIKey(),
	}
	token := &models.VerificationToken{
		Token:     hexUUID(),
		ExpiresAt: s.now().Add(s.tokenTTL),
	}

	if err := s.students.CreateWithToken(ctx, student, token); err != nil {
		if errors.Is(err, repository.ErrStudentExists) {
			return nil, nil, errEmailTaken
		}
		return nil, nil, err
	}

	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"student_id": student.ID,
			"expires_at": token.ExpiresAt,
		}).Info("verification token issued")
	}

	return student, token, nil
}

// Activate подтверждает учётную запись по токену.
func (s *AccountService) Activate(ctx context.Context, token string) error {
	if token == "" {
		return errInvalidToken
	}

	vt, err := s.students.GetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return errInvalidToken
		}
		return err
	}

	if vt.ExpiresAt.Before(s.now()) {
		return errTokenExpired
	}

	if err := s.students.Activate(ctx, vt); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return errInvalidToken
		}
		return err
	}
	return nil
}

// Login проверяет email и пароль и возвращает ключ доступа студента.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	student, err := s.students.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return "", apperror.ErrBadCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)); err != nil {
		return "", apperror.ErrBadCredentials
	}
	if !student.Verified {
		return "", apperror.ErrAccountInactive
	}

	return student.APIKey, nil
}

// CreateAdministrator заводит модератора с уникальным ключом доступа.
func (s *AccountService) CreateAdministrator(ctx context.Context, name, email, password string) (*models.Administrator, error) {
	if err := validation.ValidateRequired("nombre", name); err != nil {
		return nil, apperror.New(apperror.ErrCodeInvalidInput, err.Error())
	}
	if err := validation.ValidateRequired("email", email); err != nil {
		return nil, apperror.New(apperror.ErrCodeInvalidInput, err.Error())
	}
	if err := validation.ValidateRequired("password", password); err != nil {
		return nil, apperror.New(apperror.ErrCodeInvalidInput, err.Error())
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("account service: не удалось захешировать пароль: %w", err)
	}

	admin := &models.Administrator{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(passHash),
	}

	for attempt := 0; attempt < maxAdminKeyAttempts; attempt++ {
		key, err := newAdministratorAPIKey()
		if err != nil {
			return nil, err
		}

		taken, err := s.admins.APIKeyExists(ctx, key)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		admin.APIKey = key
		err = s.admins.Create(ctx, admin)
		switch {
		case err == nil:
			return admin, nil
		case errors.Is(err, repository.ErrAPIKeyTaken):
			// ключ заняли между проверкой и вставкой
			continue
		case errors.Is(err, repository.ErrAdministratorExists):
			return nil, apperror.New(apperror.ErrCodeAlreadyExists, "Ya existe un administrador con este email.")
		default:
			return nil, err
		}
	}

	return nil, fmt.Errorf("account service: не удалось сгенерировать уникальный api key за %d попыток", maxAdminKeyAttempts)
}

func hexUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newStudentAPIKey() string {
	return "api_" + hexUUID()
}

func newAdministratorAPIKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("account service: generate api key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
