package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name" validate:"required,min=5"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Photo        string   `json:"photo,omitempty"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role" validate:"omitempty,is-user-role"`

	EmailVerified            bool       `gorm:"default:false" json:"email_verified"`
	EmailVerificationToken   string     `gorm:"index" json:"-"`
	VerificationTokenExpires *time.Time `json:"-"`

	// The reset token column holds a sha512 hex digest; the plaintext is only
	// ever emailed to the user.
	PasswordResetToken   string     `gorm:"index" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	PasswordChangedAt    *time.Time `json:"-"`

	// Soft delete: inactive users are excluded from default lookups.
	Active bool `gorm:"default:true" json:"-"`
}

// BeforeSave keeps the email in canonical form so lookups by lowercased
// address always resolve, whichever write path stored it.
func (u *User) BeforeSave(*gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// PasswordChangedAfter reports whether the password was changed after the
// given token issue time. Used to invalidate tokens issued before a change.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	// Truncate to seconds: JWT iat has second precision and the stamp is
	// written just after hashing.
	return u.PasswordChangedAt.Truncate(time.Second).After(issuedAt)
}
