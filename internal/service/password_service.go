package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/identity-api/internal/domain/entity"
	"github.com/yourusername/identity-api/internal/domain/repository"
	apperrors "github.com/yourusername/identity-api/internal/pkg/errors"
)

// PasswordService handles the forgotten-password flow: issuing a reset code
// and applying a new password once the code checks out.
type PasswordService struct {
	userRepo repository.UserRepository
	codeRepo repository.VerificationRepository
	txm      repository.TxManager
	notifier NotificationService
}

func NewPasswordService(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationRepository,
	txm repository.TxManager,
	notifier NotificationService,
) (*PasswordService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required for PasswordService")
	}
	if codeRepo == nil {
		return nil, fmt.Errorf("verification repository is required for PasswordService")
	}
	if txm == nil {
		return nil, fmt.Errorf("transaction manager is required for PasswordService")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notification service is required for PasswordService")
	}
	return &PasswordService{
		userRepo: userRepo,
		codeRepo: codeRepo,
		txm:      txm,
		notifier: notifier,
	}, nil
}

// RequestReset issues a password reset code for a verified account. Unknown
// and unverified emails both report false without an error, so the endpoint
// does not leak which addresses hold accounts.
func (s *PasswordService) RequestReset(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to load user: %v", apperrors.ErrInternal, err)
	}
	if !user.IsVerified {
		return false, nil
	}

	code, err := s.codeRepo.CreateCode(ctx, user.ID, entity.PurposePasswordReset)
	if err != nil {
		return false, fmt.Errorf("%w: failed to issue reset code: %v", apperrors.ErrInternal, err)
	}

	if err := s.notifier.SendPasswordResetCode(ctx, user.Email, code); err != nil {
		log.Printf("[PasswordService] failed to deliver reset code to %s: %v", user.Email, err)
		return false, fmt.Errorf("%w: %v", ErrNotificationDeliveryFailed, err)
	}

	log.Printf("[PasswordService] reset code issued for user id=%d", user.ID)
	return true, nil
}

// ConfirmReset sets a new password when the reset code matches and has not
// expired. The password change and the code consumption commit as one unit.
// A false result covers unknown email, wrong code and expired code alike.
func (s *PasswordService) ConfirmReset(ctx context.Context, email, code, newPassword string) (bool, error) {
	email = normalizeEmail(email)
	if newPassword == "" {
		return false, fmt.Errorf("%w: new password is required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to load user: %v", apperrors.ErrInternal, err)
	}

	changed := false
	err = s.txm.WithinTransaction(ctx, func(users repository.UserRepository, codes repository.VerificationRepository) error {
		ok, err := codes.VerifyCode(ctx, user.ID, code, entity.PurposePasswordReset)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if err := users.UpdatePassword(ctx, user.ID, newPassword); err != nil {
			return err
		}
		if err := codes.DeleteCode(ctx, user.ID, entity.PurposePasswordReset); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: password reset failed: %v", apperrors.ErrInternal, err)
	}
	if changed {
		log.Printf("[PasswordService] password reset completed for user id=%d", user.ID)
	}
	return changed, nil
}
