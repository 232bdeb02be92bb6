package services

import (
	"context"

	"go.uber.org/zap"
)

// EmailSender delivers the password reset link. Delivery is external to
// the reset flow; the implementation in external/resend is wired in main.
type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, resetLink string) error
}

// LogEmailSender writes the reset link to the log instead of sending
// anything. Used when no mail provider is configured (local development).
type LogEmailSender struct {
	log *zap.Logger
}

func NewLogEmailSender(log *zap.Logger) *LogEmailSender {
	return &LogEmailSender{log: log}
}

func (s *LogEmailSender) SendPasswordResetEmail(ctx context.Context, toEmail, resetLink string) error {
	s.log.Info("password reset link",
		zap.String("email", toEmail),
		zap.String("link", resetLink),
	)
	return nil
}
