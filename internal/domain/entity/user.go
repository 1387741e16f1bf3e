package entity

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an account identified primarily by email. Email uniqueness is
// case-insensitive even though the stored value keeps its original casing.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Email uniqueness is enforced by the migrations through a unique index
	// on LOWER(email); a plain uniqueIndex tag here would wrongly suggest
	// case-sensitive uniqueness.
	Email    string `gorm:"size:100;not null" json:"email"`
	Username string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password string `gorm:"size:100;not null" json:"-"`

	// IsVerified flips to true only through a successful code confirmation
	// (or the createadmin command) and never flips back.
	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`
	IsActive   bool `gorm:"not null;default:true" json:"is_active"`

	// Slug is derived from the email local part once at creation and used
	// for public profile URLs.
	Slug string `gorm:"size:100;not null;uniqueIndex" json:"slug"`

	FirstName string     `gorm:"size:100;not null;default:''" json:"first_name"`
	LastName  string     `gorm:"size:100;not null;default:''" json:"last_name"`
	Bio       string     `gorm:"size:500;not null;default:''" json:"bio"`
	Phone     string     `gorm:"size:20;not null;default:''" json:"phone"`
	Location  string     `gorm:"size:100;not null;default:''" json:"location"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// FullName returns "First Last" with surrounding whitespace trimmed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
