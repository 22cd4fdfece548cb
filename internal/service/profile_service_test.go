package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) GetByStudent(ctx context.Context, studentID int64) (*models.Profile, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) Delete(ctx context.Context, studentID int64) error {
	args := m.Called(ctx, studentID)
	return args.Error(0)
}

func newProfileFixture() (*ProfileService, *mockProfileRepo, *memDB) {
	db := newMemDB()
	repo := new(mockProfileRepo)
	identity := NewIdentity(memStudents{db}, memAdmins{db}, memListings{db})
	return NewProfileService(identity, repo), repo, db
}

func TestProfileCreate_DefaultName(t *testing.T) {
	svc, repo, db := newProfileFixture()
	ctx := context.Background()
	student := db.addStudent("key-a")

	repo.On("Create", ctx, mock.AnythingOfType("*models.Profile")).Return(nil)

	profile, err := svc.Create(ctx, "key-a", ProfileInput{Bio: strPtr("Me gusta enseñar")})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfileName, profile.Name)
	assert.Equal(t, student.ID, profile.StudentID)
}

func TestProfileCreate_Twice(t *testing.T) {
	svc, repo, db := newProfileFixture()
	ctx := context.Background()
	db.addStudent("key-a")

	repo.On("Create", ctx, mock.Anything).Return(repository.ErrProfileExists)

	_, err := svc.Create(ctx, "key-a", ProfileInput{})
	assert.Equal(t, apperror.ErrCodeAlreadyExists, apperror.CodeOf(err))
}

func TestProfileCreate_BadPhoto(t *testing.T) {
	svc, repo, db := newProfileFixture()
	db.addStudent("key-a")

	_, err := svc.Create(context.Background(), "key-a", ProfileInput{PhotoURL: strPtr("not a url")})
	assert.True(t, apperror.IsInvalidInput(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProfileGet_Missing(t *testing.T) {
	svc, repo, db := newProfileFixture()
	ctx := context.Background()
	student := db.addStudent("key-a")

	repo.On("GetByStudent", ctx, student.ID).Return(nil, repository.ErrProfileNotFound)

	_, err := svc.Get(ctx, "key-a")
	assert.ErrorIs(t, err, apperror.ErrProfileNotFound)
}

func TestProfileUpdate_Partial(t *testing.T) {
	svc, repo, db := newProfileFixture()
	ctx := context.Background()
	student := db.addStudent("key-a")

	repo.On("GetByStudent", ctx, student.ID).Return(&models.Profile{ID: 1, StudentID: student.ID, Name: "Ana", Bio: strPtr("bio")}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*models.Profile")).Return(nil)

	profile, err := svc.Update(ctx, "key-a", ProfileInput{SkillsOffered: strPtr("guitarra")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, "bio", *profile.Bio)
	assert.Equal(t, "guitarra", *profile.SkillsOffered)
}

func TestProfileDelete(t *testing.T) {
	svc, repo, db := newProfileFixture()
	ctx := context.Background()
	student := db.addStudent("key-a")

	repo.On("Delete", ctx, student.ID).Return(nil).Once()
	repo.On("Delete", ctx, student.ID).Return(repository.ErrProfileNotFound).Once()

	require.NoError(t, svc.Delete(ctx, "key-a"))
	assert.ErrorIs(t, svc.Delete(ctx, "key-a"), apperror.ErrProfileNotFound)
}
