package services

import (
	"errors"
	"time"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// UpdateMeInput is the self-service profile payload. Password fields are
// rejected before this struct is ever bound.
type UpdateMeInput struct {
	Name  string `json:"name" validate:"omitempty,min=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Photo string `json:"photo"`
}

type UserService interface {
	GetMe(userID string) (*models.User, error)
	UpdateMe(userID string, input *UpdateMeInput) (*models.User, error)
	DeleteMe(userID string) error
}

type UserServiceImpl struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &UserServiceImpl{users: users}
}

func (s *UserServiceImpl) GetMe(userID string) (*models.User, error) {
	user, err := s.users.FindActiveByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserGone
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// UpdateMe applies only the whitelisted profile fields. Role, password and
// verification state are untouchable through this path.
func (s *UserServiceImpl) UpdateMe(userID string, input *UpdateMeInput) (*models.User, error) {
	user, err := s.users.FindActiveByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserGone
		}
		return nil, apperrors.InternalError(err)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = normalizeEmail(input.Email)
	}
	if input.Photo != "" {
		user.Photo = input.Photo
	}

	if err := s.users.Save(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.NewConflictError("user", "Email already in use")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// DeleteMe soft-deletes the account. The row stays; listings and logins
// stop resolving it.
func (s *UserServiceImpl) DeleteMe(userID string) error {
	if err := s.users.Deactivate(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserGone
		}
		return apperrors.InternalError(err)
	}
	return nil
}
