package postgres

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/identity-api/internal/domain/entity"
)

// DefaultCodeTTL is how long a verification code stays valid.
const DefaultCodeTTL = 10 * time.Minute

// VerificationRepo implements repository.VerificationRepository on
// PostgreSQL via GORM.
type VerificationRepo struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewVerificationRepo(db *gorm.DB, ttl time.Duration) *VerificationRepo {
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}
	return &VerificationRepo{db: db, ttl: ttl}
}

// CreateCode purges the (userID, purpose) slot and inserts a fresh random
// code in one transaction, so the single-live-code invariant holds even if
// the insert fails. Returns the plaintext code.
func (r *VerificationRepo) CreateCode(ctx context.Context, userID uint, purpose string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	record := &entity.VerificationCode{
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND purpose = ?", userID, purpose).
			Delete(&entity.VerificationCode{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}
	return code, nil
}

// VerifyCode checks the exact (userID, code, purpose) triple. Expired codes
// are deleted lazily and reported invalid. Valid codes are left in place;
// the caller deletes them once the business effect has been applied.
func (r *VerificationRepo) VerifyCode(ctx context.Context, userID uint, code, purpose string) (bool, error) {
	var record entity.VerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND purpose = ?", userID, code, purpose).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up verification code: %w", err)
	}

	if record.IsExpired(time.Now()) {
		if err := r.db.WithContext(ctx).Delete(&entity.VerificationCode{}, record.ID).Error; err != nil {
			return false, fmt.Errorf("failed to delete expired verification code: %w", err)
		}
		return false, nil
	}
	return true, nil
}

// DeleteCode purges the (userID, purpose) slot. Deleting nothing is fine.
func (r *VerificationRepo) DeleteCode(ctx context.Context, userID uint, purpose string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Delete(&entity.VerificationCode{}).Error
}

// generateCode draws a uniform random 6-digit code from the full
// 100000-999999 range, so the leading digit is never zero. The range is part
// of the external contract: a human types exactly six digits.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
