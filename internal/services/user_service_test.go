package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourhub_backend/internal/models"
	"tourhub_backend/pkg/apperrors"
)

func seedUser(repo *fakeUserRepo, id string) *models.User {
	u := &models.User{
		Name:          "Test User",
		Email:         id + "@example.com",
		Photo:         "default.jpg",
		Role:          models.UserRoleUser,
		EmailVerified: true,
		Active:        true,
	}
	u.ID = id
	repo.users[id] = u
	return u
}

func TestUpdateMe(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u1")
	svc := NewUserService(repo)

	updated, err := svc.UpdateMe("u1", &UpdateMeInput{Name: "New Name", Photo: "me.jpg"})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "me.jpg", updated.Photo)
	// Omitted fields keep their values.
	assert.Equal(t, "u1@example.com", updated.Email)
	assert.Equal(t, models.UserRoleUser, updated.Role)
}

func TestUpdateMe_NormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u1")
	svc := NewUserService(repo)

	updated, err := svc.UpdateMe("u1", &UpdateMeInput{Email: "  Laura.New@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "laura.new@example.com", updated.Email)

	// The lowercased address is what login resolves against.
	stored, err := repo.FindByEmail("laura.new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.ID)
}

func TestUpdateMe_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u1")
	seedUser(repo, "u2")
	svc := NewUserService(repo)

	_, err := svc.UpdateMe("u1", &UpdateMeInput{Email: "u2@example.com"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestUpdateMe_GoneUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.UpdateMe("ghost", &UpdateMeInput{Name: "Nobody Here"})
	assert.ErrorIs(t, err, apperrors.ErrUserGone)
}

func TestDeleteMe(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u1")
	svc := NewUserService(repo)

	require.NoError(t, svc.DeleteMe("u1"))

	// Soft delete: the row survives but active lookups miss it.
	stored, err := repo.FindByID("u1")
	require.NoError(t, err)
	assert.False(t, stored.Active)

	_, err = svc.GetMe("u1")
	assert.ErrorIs(t, err, apperrors.ErrUserGone)
}

func TestGetMe(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u1")
	svc := NewUserService(repo)

	user, err := svc.GetMe("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}
