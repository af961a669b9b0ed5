// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	FirstName    string   `json:"first_name" gorm:"size:150"`
	LastName     string   `json:"last_name" gorm:"size:150"`
	Email        string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	Company      string   `json:"company" gorm:"size:100"`
	Position     string   `json:"position" gorm:"size:100"`
	UserType     UserType `json:"type" gorm:"type:varchar(10);not null;default:'buyer'"`
	IsActive     bool     `json:"-" gorm:"not null;default:false"`

	// Relationships
	Contacts []Contact `json:"contacts" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// DisplayName is the name used in greetings.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

// ConfirmEmailToken activates a freshly registered account.
type ConfirmEmailToken struct {
	BaseModel
	UserID uint   `json:"user_id" gorm:"not null;uniqueIndex"`
	Key    string `json:"-" gorm:"size:64;not null;uniqueIndex"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type PasswordResetToken struct {
	BaseModel
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Key       string    `json:"-" gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Expired reports whether the token can no longer be redeemed at now.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
