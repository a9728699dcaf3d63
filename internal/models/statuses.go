package models

type UserRole string
type Difficulty string

const (
	UserRoleUser      UserRole = "user"
	UserRoleGuide     UserRole = "guide"
	UserRoleLeadGuide UserRole = "lead-guide"
	UserRoleAdmin     UserRole = "admin"

	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// ValidRole reports whether the role is one of the known roles.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleUser, UserRoleGuide, UserRoleLeadGuide, UserRoleAdmin:
		return true
	}
	return false
}
