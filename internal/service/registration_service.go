package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/identity-api/internal/domain/entity"
	"github.com/yourusername/identity-api/internal/domain/repository"
	apperrors "github.com/yourusername/identity-api/internal/pkg/errors"
)

// RegistrationService orchestrates account creation, code issuance and
// confirmation. A new registration stays unverified until its code is
// confirmed; re-registering the same email while unverified discards the
// old record (reclaim).
type RegistrationService struct {
	userRepo repository.UserRepository
	txm      repository.TxManager
	notifier NotificationService
}

// RegisterInput carries the data for a registration attempt.
type RegisterInput struct {
	Email    string
	Username string
	Password string

	FirstName string
	LastName  string
	Bio       string
	Phone     string
	Location  string
	BirthDate *time.Time
}

func NewRegistrationService(
	userRepo repository.UserRepository,
	txm repository.TxManager,
	notifier NotificationService,
) (*RegistrationService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required for RegistrationService")
	}
	if txm == nil {
		return nil, fmt.Errorf("transaction manager is required for RegistrationService")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notification service is required for RegistrationService")
	}
	return &RegistrationService{
		userRepo: userRepo,
		txm:      txm,
		notifier: notifier,
	}, nil
}

// Register creates an unverified user, issues a registration code and sends
// it through the notification port. User creation and code issuance commit
// as one unit: if code issuance fails, the user row does not persist.
//
// If delivery fails the user row stays committed; the created user is
// returned together with an error wrapping ErrNotificationDeliveryFailed so
// the caller can offer a resend.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	input.Email = normalizeEmail(input.Email)
	input.Username = strings.TrimSpace(input.Username)

	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", apperrors.ErrValidation)
	}
	if input.Username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}

	// A verified owner of the email blocks registration outright. The
	// repository re-checks inside the transaction; this early check exists
	// to answer the common case without opening one.
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: failed to check email: %v", apperrors.ErrInternal, err)
	}
	if existing != nil && existing.IsVerified {
		return nil, fmt.Errorf("%w: a verified user already exists with this email", ErrUserAlreadyExists)
	}

	var (
		user *entity.User
		code string
	)
	err = s.txm.WithinTransaction(ctx, func(users repository.UserRepository, codes repository.VerificationRepository) error {
		slug, err := uniqueSlug(ctx, users, input.Email)
		if err != nil {
			return err
		}

		user = &entity.User{
			Email:      input.Email,
			Username:   input.Username,
			Password:   input.Password,
			IsVerified: false,
			IsActive:   true,
			Slug:       slug,
			FirstName:  strings.TrimSpace(input.FirstName),
			LastName:   strings.TrimSpace(input.LastName),
			Bio:        input.Bio,
			Phone:      input.Phone,
			Location:   input.Location,
			BirthDate:  input.BirthDate,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}

		code, err = codes.CreateCode(ctx, user.ID, entity.PurposeRegistration)
		return err
	})
	if err != nil {
		// The concurrent-registration race surfaces as a unique violation;
		// the loser gets the domain "already exists" error.
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %v", ErrUserAlreadyExists, err)
		}
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: registration failed: %v", apperrors.ErrInternal, err)
	}

	log.Printf("[RegistrationService] user id=%d (%s) registered, pending verification", user.ID, user.Email)

	if err := s.notifier.SendRegistrationConfirmation(ctx, user.Email, code); err != nil {
		log.Printf("[RegistrationService] failed to deliver registration code to %s: %v", user.Email, err)
		return user, fmt.Errorf("%w: %v", ErrNotificationDeliveryFailed, err)
	}
	return user, nil
}

// Confirm verifies a registration code. Confirming an already-verified user
// returns true without requiring or consuming a code. On success the
// verified flip and the code deletion commit as one unit.
func (s *RegistrationService) Confirm(ctx context.Context, email, code string) (bool, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, err
		}
		return false, fmt.Errorf("%w: failed to load user: %v", apperrors.ErrInternal, err)
	}
	if user.IsVerified {
		return true, nil
	}

	confirmed := false
	err = s.txm.WithinTransaction(ctx, func(users repository.UserRepository, codes repository.VerificationRepository) error {
		ok, err := codes.VerifyCode(ctx, user.ID, code, entity.PurposeRegistration)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		current, err := users.GetByID(ctx, user.ID)
		if err != nil {
			return err
		}
		current.IsVerified = true
		if err := users.Update(ctx, current); err != nil {
			return err
		}
		if err := codes.DeleteCode(ctx, user.ID, entity.PurposeRegistration); err != nil {
			return err
		}
		confirmed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: confirmation failed: %v", apperrors.ErrInternal, err)
	}
	if confirmed {
		log.Printf("[RegistrationService] user id=%d (%s) verified", user.ID, user.Email)
	}
	return confirmed, nil
}

// uniqueSlug derives a slug from the email local part and suffixes it with
// a counter until it is free. The check-and-suffix loop is explicit here
// rather than hidden in a persistence hook.
func uniqueSlug(ctx context.Context, users repository.UserRepository, email string) (string, error) {
	base := slugify(strings.SplitN(email, "@", 2)[0])
	if base == "" {
		base = "user"
	}

	candidate := base
	for n := 1; ; n++ {
		_, err := users.GetBySlug(ctx, candidate)
		if errors.Is(err, apperrors.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check slug availability: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// normalizeEmail trims whitespace and lowercases.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
