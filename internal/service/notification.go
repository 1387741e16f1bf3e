package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

// NotificationService is the port through which verification codes reach
// users. Each call completes or fails with an error; retry policy belongs
// to the transport adapter, not to the calling service.
type NotificationService interface {
	SendRegistrationConfirmation(ctx context.Context, email, code string) error
	SendPasswordResetCode(ctx context.Context, email, code string) error
	SendEmailChangeConfirmation(ctx context.Context, email, code string) error
}

// LogNotificationService is used when email delivery is disabled: codes are
// written to the application log instead of being sent.
type LogNotificationService struct{}

func (s *LogNotificationService) SendRegistrationConfirmation(ctx context.Context, email, code string) error {
	log.Printf("[Notification] registration confirmation code for %s: %s", email, code)
	return nil
}

func (s *LogNotificationService) SendPasswordResetCode(ctx context.Context, email, code string) error {
	log.Printf("[Notification] password reset code for %s: %s", email, code)
	return nil
}

func (s *LogNotificationService) SendEmailChangeConfirmation(ctx context.Context, email, code string) error {
	log.Printf("[Notification] email change confirmation code for %s: %s", email, code)
	return nil
}

// ResendNotificationService delivers codes via the Resend REST API. The
// email copy states the configured code lifetime.
type ResendNotificationService struct {
	from    string
	ttlText string
	client  *resend.Client
}

func NewResendNotificationService(apiKey, from string, codeTTL time.Duration) (*ResendNotificationService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("notification from address is required")
	}
	if codeTTL <= 0 {
		codeTTL = 10 * time.Minute
	}
	return &ResendNotificationService{
		from:    from,
		ttlText: formatTTL(codeTTL),
		client:  resend.NewClient(apiKey),
	}, nil
}

func (s *ResendNotificationService) SendRegistrationConfirmation(ctx context.Context, email, code string) error {
	return s.send(ctx, email, code,
		"Confirm your registration",
		"Your registration confirmation code is %s. It expires in %s.")
}

func (s *ResendNotificationService) SendPasswordResetCode(ctx context.Context, email, code string) error {
	return s.send(ctx, email, code,
		"Password reset code",
		"Your password reset code is %s. It expires in %s.")
}

func (s *ResendNotificationService) SendEmailChangeConfirmation(ctx context.Context, email, code string) error {
	return s.send(ctx, email, code,
		"Confirm your new email address",
		"Your email change confirmation code is %s. It expires in %s.")
}

// formatTTL renders a code lifetime for the email copy, in whole minutes
// (rounded, never below one).
func formatTTL(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func (s *ResendNotificationService) send(ctx context.Context, toEmail, code, subject, textFmt string) error {
	if toEmail == "" || code == "" {
		return fmt.Errorf("toEmail and code are required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: subject,
		Text:    fmt.Sprintf(textFmt, code, s.ttlText),
		Html:    fmt.Sprintf("<p>"+strings.Replace(textFmt, "%s", "<strong>%s</strong>", 1)+"</p>", code, s.ttlText),
	}

	options := &resend.SendEmailOptions{
		IdempotencyKey: uuid.NewString(),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
