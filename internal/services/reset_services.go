package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/MorneNemdil/lovejoy-security-project/internal/repository"

	"go.uber.org/zap"
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
)

// ResetService owns the password-recovery token lifecycle: single-use,
// time-limited tokens tied to an account row.
type ResetService struct {
	Accounts AccountStore
	Hasher   *PasswordHasher
	Sender   EmailSender

	resetLinkBase string
	log           *zap.Logger
}

func NewResetService(accounts AccountStore, hasher *PasswordHasher, sender EmailSender, resetLinkBase string, log *zap.Logger) *ResetService {
	return &ResetService{
		Accounts:      accounts,
		Hasher:        hasher,
		Sender:        sender,
		resetLinkBase: resetLinkBase,
		log:           log,
	}
}

// RequestReset starts recovery for the given email. The caller gets the
// same nil result whether or not the account exists, so the endpoint
// cannot be used to enumerate addresses. For a known account it stores a
// fresh token with a one hour expiry and hands the link to the sender.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingFields
	}

	acct, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error("reset lookup failed", zap.Error(err))
		}
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(resetTokenTTL)
	if err := s.Accounts.SetResetToken(ctx, acct.ID, token, expiry); err != nil {
		return err
	}

	link := s.resetLinkBase + token
	if err := s.Sender.SendPasswordResetEmail(ctx, acct.Email, link); err != nil {
		// Token is persisted; a delivery failure must not change the
		// generic response the caller sees.
		s.log.Error("sending reset email failed", zap.Error(err))
	}
	return nil
}

// ConsumeReset redeems a recovery token. Order matters: expiry is checked
// before password strength, so an expired token is burned even when the
// new password would have been accepted. A weak password leaves the token
// valid for another attempt.
func (s *ResetService) ConsumeReset(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrMissingFields
	}

	acct, err := s.Accounts.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if acct.ResetTokenExpiry == nil || acct.ResetTokenExpiry.Before(time.Now()) {
		if err := s.Accounts.ClearResetToken(ctx, acct.ID); err != nil {
			return err
		}
		return ErrTokenExpired
	}

	if ok, reason := CheckPasswordStrength(newPassword); !ok {
		return &WeakPasswordError{Reason: reason}
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	// UpdatePassword clears the token in the same write, so it cannot be
	// consumed twice.
	return s.Accounts.UpdatePassword(ctx, acct.ID, hash)
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
