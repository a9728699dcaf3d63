package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/email"
	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.nextID++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Save(user *models.User) error {
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindActiveByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || !u.Active {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(emailAddr string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == emailAddr && u.Active {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByResetTokenHash(hash string) (*models.User, error) {
	for _, u := range r.users {
		if u.PasswordResetToken == hash &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(time.Now()) {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByVerificationToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if u.EmailVerificationToken == token &&
			u.VerificationTokenExpires != nil && u.VerificationTokenExpires.After(time.Now()) {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Deactivate(userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Active = false
	return nil
}

// recordingMail records sent messages and can be told to fail.
type recordingMail struct {
	verifications []string // urls
	resets        []string
	fail          bool
}

func (m *recordingMail) Send(*email.Email) error { return nil }

func (m *recordingMail) SendVerification(to, url string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.verifications = append(m.verifications, url)
	return nil
}

func (m *recordingMail) SendPasswordReset(to, url string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.resets = append(m.resets, url)
	return nil
}

func newAuthFixture() (*fakeUserRepo, *recordingMail, AuthService) {
	repo := newFakeUserRepo()
	mail := &recordingMail{}
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	svc := NewAuthService(repo, mail, tokens, "http://localhost:4000")
	return repo, mail, svc
}

func signupInput() *SignupInput {
	return &SignupInput{
		Name:            "Laura Williams",
		Email:           "laura@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	}
}

func TestSignup(t *testing.T) {
	repo, mail, svc := newAuthFixture()

	user, token, err := svc.Signup(signupInput())
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, models.UserRoleUser, user.Role, "role is never taken from the payload")
	assert.False(t, user.EmailVerified)
	assert.NotEmpty(t, user.EmailVerificationToken)
	assert.NotEqual(t, "pass1234", user.PasswordHash, "password is stored hashed")

	require.Len(t, mail.verifications, 1)
	assert.Contains(t, mail.verifications[0], user.EmailVerificationToken)

	stored, err := repo.FindByEmail("laura@example.com")
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash("pass1234", stored.PasswordHash))
}

func TestSignup_PasswordMismatch(t *testing.T) {
	_, _, svc := newAuthFixture()

	input := signupInput()
	input.PasswordConfirm = "different"

	_, _, err := svc.Signup(input)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, _, err := svc.Signup(signupInput())
	require.NoError(t, err)

	_, _, err = svc.Signup(signupInput())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestSignup_DeliveryFailureRollsBackToken(t *testing.T) {
	repo, mail, svc := newAuthFixture()
	mail.fail = true

	_, _, err := svc.Signup(signupInput())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDeliveryFailed, appErr.Code)

	stored, findErr := repo.FindByEmail("laura@example.com")
	require.NoError(t, findErr)
	assert.Empty(t, stored.EmailVerificationToken)
	assert.Nil(t, stored.VerificationTokenExpires)
}

func TestLogin(t *testing.T) {
	_, _, svc := newAuthFixture()
	_, _, err := svc.Signup(signupInput())
	require.NoError(t, err)

	user, token, err := svc.Login("laura@example.com", "pass1234")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "laura@example.com", user.Email)
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	_, _, svc := newAuthFixture()
	_, _, err := svc.Signup(signupInput())
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login("laura@example.com", "wrong-pass")
	_, _, unknownEmail := svc.Login("nobody@example.com", "pass1234")

	// Same error either way: the response must not reveal which accounts exist.
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
}

func TestVerifyEmail(t *testing.T) {
	repo, _, svc := newAuthFixture()
	user, _, err := svc.Signup(signupInput())
	require.NoError(t, err)

	token := user.EmailVerificationToken
	require.NoError(t, svc.VerifyEmail(token))

	stored, _ := repo.FindByID(user.ID)
	assert.True(t, stored.EmailVerified)
	assert.Empty(t, stored.EmailVerificationToken)
	assert.Nil(t, stored.VerificationTokenExpires)

	// The token is consumed; a second click fails.
	assert.ErrorIs(t, svc.VerifyEmail(token), apperrors.ErrInvalidOrExpiredToken)
}

func TestVerifyEmail_BadToken(t *testing.T) {
	_, _, svc := newAuthFixture()

	err := svc.VerifyEmail("no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)
}

func TestForgotPassword(t *testing.T) {
	repo, mail, svc := newAuthFixture()
	user, _, err := svc.Signup(signupInput())
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword("laura@example.com"))
	require.Len(t, mail.resets, 1)

	stored, _ := repo.FindByID(user.ID)
	assert.NotEmpty(t, stored.PasswordResetToken)
	// Only the digest is persisted: the emailed URL must not contain it.
	assert.NotContains(t, mail.resets[0], stored.PasswordResetToken)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	_, _, svc := newAuthFixture()

	err := svc.ForgotPassword("nobody@example.com")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestForgotPassword_DeliveryFailureRollsBack(t *testing.T) {
	repo, mail, svc := newAuthFixture()
	user, _, err := svc.Signup(signupInput())
	require.NoError(t, err)

	mail.fail = true
	err = svc.ForgotPassword("laura@example.com")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDeliveryFailed, appErr.Code)

	stored, _ := repo.FindByID(user.ID)
	assert.Empty(t, stored.PasswordResetToken)
	assert.Nil(t, stored.PasswordResetExpires)
}

func TestResetPassword(t *testing.T) {
	repo, mail, svc := newAuthFixture()
	user, _, err := svc.Signup(signupInput())
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword("laura@example.com"))
	plain := tokenFromURL(t, mail.resets[0])

	input := &ResetPasswordInput{Password: "newpass456", PasswordConfirm: "newpass456"}
	updated, jwt, err := svc.ResetPassword(plain, input)
	require.NoError(t, err)
	assert.NotEmpty(t, jwt)
	assert.True(t, auth.CheckPasswordHash("newpass456", updated.PasswordHash))
	assert.NotNil(t, updated.PasswordChangedAt)

	stored, _ := repo.FindByID(user.ID)
	assert.Empty(t, stored.PasswordResetToken, "reset token is single use")

	// Second use of the same token fails.
	_, _, err = svc.ResetPassword(plain, input)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)
}

func TestResetPassword_BadToken(t *testing.T) {
	_, _, svc := newAuthFixture()

	input := &ResetPasswordInput{Password: "newpass456", PasswordConfirm: "newpass456"}
	_, _, err := svc.ResetPassword("bogus", input)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)
}

func TestUpdatePassword(t *testing.T) {
	_, _, svc := newAuthFixture()
	user, _, err := svc.Signup(signupInput())
	require.NoError(t, err)

	input := &UpdatePasswordInput{
		PasswordCurrent: "pass1234",
		Password:        "newpass456",
		PasswordConfirm: "newpass456",
	}
	updated, jwt, err := svc.UpdatePassword(user.ID, input)
	require.NoError(t, err)
	assert.NotEmpty(t, jwt)
	assert.True(t, auth.CheckPasswordHash("newpass456", updated.PasswordHash))
	assert.NotNil(t, updated.PasswordChangedAt)
}

func TestUpdatePassword_WrongCurrent(t *testing.T) {
	_, _, svc := newAuthFixture()
	user, _, err := svc.Signup(signupInput())
	require.NoError(t, err)

	input := &UpdatePasswordInput{
		PasswordCurrent: "wrong",
		Password:        "newpass456",
		PasswordConfirm: "newpass456",
	}
	_, _, err = svc.UpdatePassword(user.ID, input)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode)
}

// tokenFromURL extracts the trailing path segment of an emailed link.
func tokenFromURL(t *testing.T, url string) string {
	t.Helper()
	i := len(url) - 1
	for i >= 0 && url[i] != '/' {
		i--
	}
	require.Greater(t, len(url)-i, 1, "url %q has no token segment", url)
	return url[i+1:]
}
