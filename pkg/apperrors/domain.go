package apperrors

import (
	"net/http"
)

// Factories and predefined variables for common domain errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a unique-constraint violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrDeliveryFailed wraps an email delivery failure.
func ErrDeliveryFailed(err error) *AppError {
	return Wrap(err, CodeDeliveryFailed, "email",
		"There was an error sending the email. Try again later!", http.StatusInternalServerError)
}

// ErrPaymentFailed wraps a payment-gateway failure.
func ErrPaymentFailed(err error) *AppError {
	return Wrap(err, CodePaymentFailed, "payment",
		"Could not create a checkout session. Try again later!", http.StatusInternalServerError)
}

// --- Authentication ---

// ErrInvalidCredentials deliberately does not reveal whether the email or
// the password was wrong.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Incorrect email or password.",
	http.StatusUnauthorized,
)

var ErrNotLoggedIn = New(
	CodeUnauthorized,
	"auth",
	"You are not logged in! Please log in to get access.",
	http.StatusUnauthorized,
)

var ErrInvalidSessionToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired session. Please log in again.",
	http.StatusUnauthorized,
)

var ErrUserGone = New(
	CodeUnauthorized,
	"auth",
	"The user belonging to this token no longer exists",
	http.StatusUnauthorized,
)

var ErrEmailNotVerified = New(
	CodeUnauthorized,
	"auth",
	"Please verify your email address to access this resource.",
	http.StatusUnauthorized,
)

var ErrPasswordChanged = New(
	CodeUnauthorized,
	"auth",
	"User recently changed password. Please log in again.",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"You don't have permission to perform this action.",
	http.StatusForbidden,
)

// ErrInvalidOrExpiredToken covers single-use reset and verification tokens.
var ErrInvalidOrExpiredToken = New(
	CodeInvalidToken,
	"auth",
	"Token is invalid or has expired",
	http.StatusBadRequest,
)

// --- Rate limiting ---

var ErrTooManyRequests = New(
	CodeRateLimited,
	"rate_limit",
	"Too many requests! Try again in an hour.",
	http.StatusTooManyRequests,
)
