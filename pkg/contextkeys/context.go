package contextkeys

// Custom type so keys cannot collide with other packages.
type contextKey string

const (
	// CurrentUserKey holds the *models.User resolved by the Protect middleware.
	CurrentUserKey = contextKey("currentUser")

	// UserIDKey holds the authenticated user's id as a string.
	UserIDKey = contextKey("userID")
)
