package services

import (
	"errors"
	"fmt"
	"strings"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/email"
	"tourhub_backend/internal/logger"
	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
)

// SignupInput is the registration payload.
type SignupInput struct {
	Name            string `json:"name" validate:"required,min=5"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
	Photo           string `json:"photo"`
}

// ResetPasswordInput carries the new password for a reset-token exchange.
type ResetPasswordInput struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

// UpdatePasswordInput is the logged-in password change payload.
type UpdatePasswordInput struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

type AuthService interface {
	Signup(input *SignupInput) (*models.User, string, error)
	Login(email, password string) (*models.User, string, error)
	VerifyEmail(token string) error
	ResendVerificationEmail(emailAddr string) error
	ForgotPassword(emailAddr string) error
	ResetPassword(token string, input *ResetPasswordInput) (*models.User, string, error)
	UpdatePassword(userID string, input *UpdatePasswordInput) (*models.User, string, error)
}

type AuthServiceImpl struct {
	users   repositories.UserRepository
	mail    email.Provider
	tokens  *auth.TokenService
	baseURL string
}

func NewAuthService(
	users repositories.UserRepository,
	mail email.Provider,
	tokens *auth.TokenService,
	baseURL string,
) AuthService {
	return &AuthServiceImpl{
		users:   users,
		mail:    mail,
		tokens:  tokens,
		baseURL: baseURL,
	}
}

// Signup registers a user, always with the "user" role, and sends the
// verification link. Delivery failure rolls the account's verification
// token back so a later resend starts clean.
func (s *AuthServiceImpl) Signup(input *SignupInput) (*models.User, string, error) {
	if input.Password != input.PasswordConfirm {
		return nil, "", apperrors.ValidationError(map[string]string{
			"passwordConfirm": "Passwords do not match",
		})
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, "", apperrors.ValidationError(map[string]string{
			"password": err.Error(),
		})
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	verificationToken, expires, err := auth.NewEmailVerificationToken()
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	user := &models.User{
		Name:                     input.Name,
		Email:                    normalizeEmail(input.Email),
		Photo:                    input.Photo,
		PasswordHash:             hash,
		Role:                     models.UserRoleUser,
		EmailVerificationToken:   verificationToken,
		VerificationTokenExpires: &expires,
		Active:                   true,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, "", apperrors.NewConflictError("user", "Email already in use")
		}
		return nil, "", apperrors.InternalError(err)
	}

	if err := s.mail.SendVerification(user.Email, s.verificationURL(verificationToken)); err != nil {
		logger.WithError(err).Error("failed to send verification email", "email", user.Email)
		user.EmailVerificationToken = ""
		user.VerificationTokenExpires = nil
		if saveErr := s.users.Save(user); saveErr != nil {
			logger.WithError(saveErr).Error("failed to roll back verification token")
		}
		return nil, "", apperrors.ErrDeliveryFailed(err)
	}

	jwt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	return user, jwt, nil
}

// Login checks credentials. Unknown email and wrong password produce the
// same error, so the response does not leak which accounts exist.
func (s *AuthServiceImpl) Login(emailAddr, password string) (*models.User, string, error) {
	if emailAddr == "" || password == "" {
		return nil, "", apperrors.NewBadRequestError("Please provide email and password!")
	}

	user, err := s.users.FindByEmail(normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	jwt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	return user, jwt, nil
}

// VerifyEmail marks the account verified and consumes the token. A second
// click on the same link lands on the invalid-token branch.
func (s *AuthServiceImpl) VerifyEmail(token string) error {
	user, err := s.users.FindByVerificationToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidOrExpiredToken
		}
		return apperrors.InternalError(err)
	}

	if user.EmailVerified {
		return nil
	}

	user.EmailVerified = true
	user.EmailVerificationToken = ""
	user.VerificationTokenExpires = nil
	if err := s.users.Save(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ResendVerificationEmail issues a fresh verification token for an
// unverified account.
func (s *AuthServiceImpl) ResendVerificationEmail(emailAddr string) error {
	user, err := s.users.FindByEmail(normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "There is no user with email address.")
		}
		return apperrors.InternalError(err)
	}

	if user.EmailVerified {
		return apperrors.NewBadRequestError("Email is already verified.")
	}

	token, expires, err := auth.NewEmailVerificationToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.EmailVerificationToken = token
	user.VerificationTokenExpires = &expires
	if err := s.users.Save(user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.mail.SendVerification(user.Email, s.verificationURL(token)); err != nil {
		logger.WithError(err).Error("failed to resend verification email", "email", user.Email)
		user.EmailVerificationToken = ""
		user.VerificationTokenExpires = nil
		if saveErr := s.users.Save(user); saveErr != nil {
			logger.WithError(saveErr).Error("failed to roll back verification token")
		}
		return apperrors.ErrDeliveryFailed(err)
	}
	return nil
}

// ForgotPassword emails a reset link. Only the token digest is persisted;
// when delivery fails the token fields are rolled back so the stored state
// never references an email the user never received.
func (s *AuthServiceImpl) ForgotPassword(emailAddr string) error {
	user, err := s.users.FindByEmail(normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "There is no user with email address.")
		}
		return apperrors.InternalError(err)
	}

	plain, hashed, expires, err := auth.NewPasswordResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordResetToken = hashed
	user.PasswordResetExpires = &expires
	if err := s.users.Save(user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.mail.SendPasswordReset(user.Email, s.resetURL(plain)); err != nil {
		logger.WithError(err).Error("failed to send password reset email", "email", user.Email)
		user.PasswordResetToken = ""
		user.PasswordResetExpires = nil
		if saveErr := s.users.Save(user); saveErr != nil {
			logger.WithError(saveErr).Error("failed to roll back reset token")
		}
		return apperrors.ErrDeliveryFailed(err)
	}
	return nil
}

// ResetPassword exchanges a valid reset token for a new password and logs
// the user in. The token is single use: the digest is cleared on success.
func (s *AuthServiceImpl) ResetPassword(token string, input *ResetPasswordInput) (*models.User, string, error) {
	if input.Password != input.PasswordConfirm {
		return nil, "", apperrors.ValidationError(map[string]string{
			"passwordConfirm": "Passwords do not match",
		})
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, "", apperrors.ValidationError(map[string]string{
			"password": err.Error(),
		})
	}

	user, err := s.users.FindByResetTokenHash(auth.HashToken(token))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidOrExpiredToken
		}
		return nil, "", apperrors.InternalError(err)
	}

	if err := s.applyNewPassword(user, input.Password); err != nil {
		return nil, "", err
	}

	jwt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	return user, jwt, nil
}

// UpdatePassword changes the password of a logged-in user after re-checking
// the current one, then issues a fresh session token (the change timestamp
// invalidates every token issued before it).
func (s *AuthServiceImpl) UpdatePassword(userID string, input *UpdatePasswordInput) (*models.User, string, error) {
	if input.Password != input.PasswordConfirm {
		return nil, "", apperrors.ValidationError(map[string]string{
			"passwordConfirm": "Passwords do not match",
		})
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, "", apperrors.ValidationError(map[string]string{
			"password": err.Error(),
		})
	}

	user, err := s.users.FindActiveByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", apperrors.ErrUserGone
		}
		return nil, "", apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(input.PasswordCurrent, user.PasswordHash) {
		return nil, "", apperrors.NewUnauthorizedError("Your current password is wrong.")
	}

	if err := s.applyNewPassword(user, input.Password); err != nil {
		return nil, "", err
	}

	jwt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	return user, jwt, nil
}

// applyNewPassword hashes and persists a password, stamps the change time
// and clears any outstanding reset token.
func (s *AuthServiceImpl) applyNewPassword(user *models.User, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	now := timeNow()
	user.PasswordHash = hash
	user.PasswordChangedAt = &now
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil

	if err := s.users.Save(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// normalizeEmail canonicalizes addresses so lookups never miss on case.
func normalizeEmail(emailAddr string) string {
	return strings.ToLower(strings.TrimSpace(emailAddr))
}

func (s *AuthServiceImpl) verificationURL(token string) string {
	return fmt.Sprintf("%s/api/v1/users/verifyEmail/%s", s.baseURL, token)
}

func (s *AuthServiceImpl) resetURL(token string) string {
	return fmt.Sprintf("%s/api/v1/users/resetPassword/%s", s.baseURL, token)
}
