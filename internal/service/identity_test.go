package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

type mockStudentLookup struct {
	mock.Mock
}

func (m *mockStudentLookup) GetByAPIKey(ctx context.Context, apiKey string) (*models.Student, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

type mockAdminLookup struct {
	mock.Mock
}

func (m *mockAdminLookup) GetByAPIKey(ctx context.Context, apiKey string) (*models.Administrator, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Administrator), args.Error(1)
}

type mockListingLookup struct {
	mock.Mock
}

func (m *mockListingLookup) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func TestResolveStudent(t *testing.T) {
	students := new(mockStudentLookup)
	identity := NewIdentity(students, new(mockAdminLookup), new(mockListingLookup))
	ctx := context.Background()

	students.On("GetByAPIKey", ctx, "good").Return(&models.Student{ID: 7}, nil)
	students.On("GetByAPIKey", ctx, "bad").Return(nil, repository.ErrStudentNotFound)
	students.On("GetByAPIKey", ctx, "boom").Return(nil, errors.New("connection refused"))

	s, err := identity.ResolveStudent(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.ID)

	_, err = identity.ResolveStudent(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrMissingCredential)

	_, err = identity.ResolveStudent(ctx, "bad")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredential)

	_, err = identity.ResolveStudent(ctx, "boom")
	assert.Error(t, err)
	assert.Equal(t, apperror.ErrCodeInternal, apperror.CodeOf(err))

	students.AssertNumberOfCalls(t, "GetByAPIKey", 3)
}

func TestIsAdministrator(t *testing.T) {
	students := new(mockStudentLookup)
	admins := new(mockAdminLookup)
	identity := NewIdentity(students, admins, new(mockListingLookup))
	ctx := context.Background()

	admins.On("GetByAPIKey", ctx, "admin").Return(&models.Administrator{ID: 1}, nil)
	admins.On("GetByAPIKey", ctx, mock.Anything).Return(nil, repository.ErrAdministratorNotFound)
	students.On("GetByAPIKey", ctx, "staff").Return(&models.Student{ID: 2, IsAdmin: true}, nil)
	students.On("GetByAPIKey", ctx, "plain").Return(&models.Student{ID: 3}, nil)
	students.On("GetByAPIKey", ctx, "ghost").Return(nil, repository.ErrStudentNotFound)

	cases := map[string]bool{"admin": true, "staff": true, "plain": false, "ghost": false, "": false}
	for key, want := range cases {
		got, err := identity.IsAdministrator(ctx, key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
}

func TestResolveAdministrator(t *testing.T) {
	admins := new(mockAdminLookup)
	identity := NewIdentity(new(mockStudentLookup), admins, new(mockListingLookup))
	ctx := context.Background()

	admins.On("GetByAPIKey", ctx, "admin").Return(&models.Administrator{ID: 1}, nil)
	admins.On("GetByAPIKey", ctx, "student-key").Return(nil, repository.ErrAdministratorNotFound)

	admin, err := identity.ResolveAdministrator(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), admin.ID)

	_, err = identity.ResolveAdministrator(ctx, "student-key")
	assert.ErrorIs(t, err, apperror.ErrNotModerator)

	_, err = identity.ResolveAdministrator(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrNotModerator)
}

func TestListingOwner(t *testing.T) {
	listings := new(mockListingLookup)
	identity := NewIdentity(new(mockStudentLookup), new(mockAdminLookup), listings)
	ctx := context.Background()

	listings.On("GetByID", ctx, int64(1)).Return(&models.Listing{ID: 1, StudentID: 9}, nil)
	listings.On("GetByID", ctx, int64(2)).Return(nil, repository.ErrListingNotFound)

	l, err := identity.ListingOwner(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), l.StudentID)

	_, err = identity.ListingOwner(ctx, 2)
	assert.ErrorIs(t, err, apperror.ErrListingNotFound)
}
