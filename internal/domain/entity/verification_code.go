package entity

import "time"

// Purposes a verification code can be issued for.
const (
	PurposeRegistration  = "registration"
	PurposePasswordReset = "password_reset"
	PurposeEmailChange   = "email_change"
)

// VerificationCode is a short-lived 6-digit code owned by one user. The
// unique index on (user_id, purpose) guarantees at most one live code per
// slot; creating a new code purges the previous one first.
//
// Codes are stored as plaintext: they are narrow-purpose, single-use tokens
// that expire within minutes and are consumed by the issuing flow.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_verification_codes_user_purpose" json:"user_id"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	Purpose   string    `gorm:"size:20;not null;uniqueIndex:idx_verification_codes_user_purpose" json:"purpose"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}

// IsExpired reports whether the code has lapsed at the given instant. A code
// created at T with a 10-minute TTL is valid strictly before T+10m.
func (c *VerificationCode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// ValidPurpose reports whether p is one of the known code purposes.
func ValidPurpose(p string) bool {
	switch p {
	case PurposeRegistration, PurposePasswordReset, PurposeEmailChange:
		return true
	default:
		return false
	}
}
