package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/you/assetsvc/domain"
)

const otpEmailSubject = "Your OTP for Verification"

// NotificationDispatcherImpl implements domain.NotificationDispatcher over an email transport
type NotificationDispatcherImpl struct {
	transport domain.EmailTransport
	ttl       time.Duration
	logger    *slog.Logger
}

// NewNotificationDispatcher creates a dispatcher that states ttl as the validity window
func NewNotificationDispatcher(transport domain.EmailTransport, ttl time.Duration, logger *slog.Logger) domain.NotificationDispatcher {
	return &NotificationDispatcherImpl{transport: transport, ttl: ttl, logger: logger}
}

// Deliver makes one send attempt and reports the outcome; errors are logged, not returned
func (d *NotificationDispatcherImpl) Deliver(ctx context.Context, email, code string) bool {
	body := fmt.Sprintf(
		"<h2>OTP Verification</h2><p>Your OTP is: <strong>%s</strong></p><p>This OTP will expire in %s.</p>",
		code, validityWindow(d.ttl),
	)

	if err := d.transport.SendEmail(ctx, email, otpEmailSubject, body); err != nil {
		d.logger.WarnContext(ctx, "otp email delivery failed", "email", email, "error", err)
		return false
	}
	return true
}

// validityWindow states ttl in whole minutes, rounded up, or in seconds below a minute
func validityWindow(ttl time.Duration) string {
	if ttl < time.Minute {
		secs := int(math.Ceil(ttl.Seconds()))
		if secs == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", secs)
	}
	mins := int(math.Ceil(ttl.Minutes()))
	if mins == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", mins)
}
