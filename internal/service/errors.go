package service

import "errors"

// Domain errors of the identity flows. Handlers rely on these for stable
// error_type mapping; repositories never produce them directly.
var (
	// ErrUserAlreadyExists: registration attempted for an email a verified
	// user already owns.
	ErrUserAlreadyExists = errors.New("user_already_exists")

	// ErrInvalidCredentials: unknown identifier or wrong password. The two
	// cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrAccountNotVerified: credentials are correct but the email was never
	// confirmed. Distinct from ErrInvalidCredentials so callers can prompt
	// re-verification instead of a generic login failure.
	ErrAccountNotVerified = errors.New("account_not_verified")

	// ErrAccountInactive: credentials correct, email verified, account
	// deactivated.
	ErrAccountInactive = errors.New("account_inactive")

	// ErrCodeInvalidOrExpired: verification or reset code mismatch or lapsed.
	ErrCodeInvalidOrExpired = errors.New("code_invalid_or_expired")

	// ErrNotificationDeliveryFailed: the notification port raised; surfaced
	// wrapped to the caller, never silently swallowed.
	ErrNotificationDeliveryFailed = errors.New("notification_delivery_failed")
)
