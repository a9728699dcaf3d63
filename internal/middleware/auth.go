package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/logger"
	"tourhub_backend/internal/models"
	"tourhub_backend/pkg/apperrors"
	"tourhub_backend/pkg/contextkeys"
)

// SessionCookieName is the cookie the login handler sets alongside the
// Authorization header flow.
const SessionCookieName = "jwt"

// UserLoader is the slice of the user repository Protect needs.
type UserLoader interface {
	FindActiveByID(id string) (*models.User, error)
}

// Protect authenticates the request. The token comes from the
// Authorization header or the session cookie; the user must still exist,
// be active and verified, and must not have changed their password after
// the token was issued.
func Protect(tokens *auth.TokenService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortWith(c, apperrors.ErrNotLoggedIn)
			return
		}

		userID, issuedAt, err := tokens.Verify(tokenString)
		if err != nil {
			abortWith(c, apperrors.ErrInvalidSessionToken)
			return
		}

		user, err := users.FindActiveByID(userID)
		if err != nil {
			abortWith(c, apperrors.ErrUserGone)
			return
		}

		if !user.EmailVerified {
			abortWith(c, apperrors.ErrEmailNotVerified)
			return
		}

		if user.PasswordChangedAfter(issuedAt) {
			abortWith(c, apperrors.ErrPasswordChanged)
			return
		}

		c.Set(string(contextkeys.CurrentUserKey), user)
		c.Set(string(contextkeys.UserIDKey), user.ID)

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles gates a route to the given roles. Must run after Protect.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortWith(c, apperrors.ErrNotLoggedIn)
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		abortWith(c, apperrors.ErrInsufficientPermissions)
	}
}

// CurrentUser returns the authenticated user, or nil outside Protect.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(string(contextkeys.CurrentUserKey))
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

func abortWith(c *gin.Context, err *apperrors.AppError) {
	apperrors.HandleError(c, err)
	c.Abort()
}
