package services

import (
	"context"
	"time"

	"github.com/MorneNemdil/lovejoy-security-project/internal/model"
)

// AccountStore is the durable account record store. Implemented by
// repository.AccountRepository; faked in tests.
type AccountStore interface {
	Create(ctx context.Context, name, email, phone, passwordHash string, isAdmin bool) (int64, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	GetByResetToken(ctx context.Context, token string) (*model.Account, error)
	SetResetToken(ctx context.Context, accountID int64, token string, expiry time.Time) error
	ClearResetToken(ctx context.Context, accountID int64) error
	// UpdatePassword must clear the reset token fields atomically with the
	// password hash replacement.
	UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error
}

// EvaluationStore is the durable evaluation-request store.
type EvaluationStore interface {
	Create(ctx context.Context, accountID int64, details, contactMethod string, photoFilename *string) (int64, error)
	ListAllWithOwner(ctx context.Context) ([]model.EvaluationRequestWithOwner, error)
}
