package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/services"
	"tourhub_backend/pkg/apperrors"
)

type UserHandler struct {
	// CRUD provides the admin management surface.
	*CRUD[models.User]
	users services.UserService
}

func NewUserHandler(crud *CRUD[models.User], users services.UserService) *UserHandler {
	return &UserHandler{CRUD: crud, users: users}
}

// Me returns the authenticated user's own profile.
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	profile, err := h.users.GetMe(user.ID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	Success(c, http.StatusOK, gin.H{"user": profile})
}

// UpdateMe updates the caller's profile. Any attempt to change the password
// through this route is rejected outright rather than silently filtered.
// PATCH /api/v1/users/updateMe
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}
	if _, ok := raw["password"]; ok {
		apperrors.HandleError(c, apperrors.NewBadRequestError(
			"This route is not for password updates. Please use /updateMyPassword."))
		return
	}
	if _, ok := raw["passwordConfirm"]; ok {
		apperrors.HandleError(c, apperrors.NewBadRequestError(
			"This route is not for password updates. Please use /updateMyPassword."))
		return
	}

	var input services.UpdateMeInput
	if err := json.Unmarshal(body, &input); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}
	if !h.Validate(c, &input) {
		return
	}

	updated, err := h.users.UpdateMe(user.ID, &input)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	Success(c, http.StatusOK, gin.H{"user": updated})
}

// DeleteMe soft-deletes the caller's account.
// DELETE /api/v1/users/deleteMe
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	if err := h.users.DeleteMe(user.ID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	NoContent(c)
}
