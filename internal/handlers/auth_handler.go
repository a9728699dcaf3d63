package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/services"
	"tourhub_backend/pkg/apperrors"
)

type AuthHandler struct {
	BaseHandler
	auth services.AuthService

	cookieTTL    time.Duration
	secureCookie bool
}

func NewAuthHandler(base BaseHandler, auth services.AuthService, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		auth:         auth,
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type emailInput struct {
	Email string `json:"email" validate:"required,email"`
}

// sendToken writes the session cookie and the token response. The cookie is
// httpOnly so scripts cannot read it.
func (h *AuthHandler) sendToken(c *gin.Context, httpCode int, token string, data interface{}) {
	c.SetCookie(
		middleware.SessionCookieName,
		token,
		int(h.cookieTTL.Seconds()),
		"/",
		"",
		h.secureCookie,
		true,
	)

	c.JSON(httpCode, gin.H{
		"status": "success",
		"token":  token,
		"data":   data,
	})
}

// Signup registers a new account and sends the verification email.
// POST /api/v1/users/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var input services.SignupInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	user, token, err := h.auth.Signup(&input)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.sendToken(c, http.StatusCreated, token, gin.H{"user": user})
}

// Login exchanges credentials for a session token.
// POST /api/v1/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input loginInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	user, token, err := h.auth.Login(input.Email, input.Password)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, token, gin.H{"user": user})
}

// Logout clears the session cookie.
// GET /api/v1/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "loggedout", 10, "/", "", h.secureCookie, true)
	Success(c, http.StatusOK, nil)
}

// VerifyEmail consumes a verification link. Safe to click twice.
// GET /api/v1/users/verifyEmail/:token
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	if err := h.auth.VerifyEmail(c.Param("token")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	Success(c, http.StatusOK, gin.H{"message": "Email verified successfully!"})
}

// ResendVerificationEmail issues a fresh verification link.
// POST /api/v1/users/resendVerificationEmail
func (h *AuthHandler) ResendVerificationEmail(c *gin.Context) {
	var input emailInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	if err := h.auth.ResendVerificationEmail(input.Email); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	Success(c, http.StatusOK, gin.H{"message": "Verification email sent!"})
}

// ForgotPassword emails a password reset link.
// POST /api/v1/users/forgotPassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input emailInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	if err := h.auth.ForgotPassword(input.Email); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	Success(c, http.StatusOK, gin.H{"message": "Token sent to email!"})
}

// ResetPassword exchanges a reset token for a new password.
// PATCH /api/v1/users/resetPassword/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input services.ResetPasswordInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	user, token, err := h.auth.ResetPassword(c.Param("token"), &input)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, token, gin.H{"user": user})
}

// UpdateMyPassword changes the logged-in user's password.
// PATCH /api/v1/users/updateMyPassword
func (h *AuthHandler) UpdateMyPassword(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var input services.UpdatePasswordInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	updated, token, err := h.auth.UpdatePassword(user.ID, &input)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, token, gin.H{"user": updated})
}
