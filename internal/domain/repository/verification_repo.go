package repository

import "context"

// VerificationRepository persists short-lived verification codes keyed by
// (user, purpose). At most one live code exists per slot.
type VerificationRepository interface {
	// CreateCode deletes any existing code for (userID, purpose), generates
	// a uniformly random 6-digit code in 100000-999999 and persists it with
	// the configured expiry. Returns the plaintext code for delivery.
	CreateCode(ctx context.Context, userID uint, purpose string) (string, error)

	// VerifyCode looks up the code exactly matching (userID, code, purpose).
	// A missing code is false. An expired code is deleted as a side effect
	// and reported false. A live code is reported true and NOT deleted:
	// consumption is a separate, explicit DeleteCode call so callers can
	// verify without committing.
	VerifyCode(ctx context.Context, userID uint, code, purpose string) (bool, error)

	// DeleteCode removes all codes for (userID, purpose). Idempotent.
	DeleteCode(ctx context.Context, userID uint, purpose string) error
}
