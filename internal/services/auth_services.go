package services

import (
	"context"
	"errors"

	"github.com/MorneNemdil/lovejoy-security-project/internal/model"
	"github.com/MorneNemdil/lovejoy-security-project/internal/repository"
)

// BootstrapAdminEmail is the one address granted the admin role at
// registration. There is no promotion endpoint.
const BootstrapAdminEmail = "admin@lovejoy.com"

// dummyDigest is a valid bcrypt digest of an unrelated string. Login runs a
// compare against it when the email is unknown so the two failure paths
// take the same time.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	Accounts AccountStore
	Hasher   *PasswordHasher
}

func NewAuthService(accounts AccountStore, hasher *PasswordHasher) *AuthService {
	return &AuthService{Accounts: accounts, Hasher: hasher}
}

// Register creates a new account. All fields are required, the password
// must pass the strength policy, and the email must be unused. Does not
// log the new account in.
func (s *AuthService) Register(ctx context.Context, name, email, phone, password string) (int64, error) {
	if name == "" || email == "" || phone == "" || password == "" {
		return 0, ErrMissingFields
	}
	if ok, reason := CheckPasswordStrength(password); !ok {
		return 0, &WeakPasswordError{Reason: reason}
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return 0, err
	}

	// Uniqueness is left to the store's constraint so concurrent
	// registrations of the same email resolve to exactly one winner.
	id, err := s.Accounts.Create(ctx, name, email, phone, hash, email == BootstrapAdminEmail)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return 0, ErrEmailInUse
		}
		return 0, err
	}
	return id, nil
}

// Login authenticates by email + password. Unknown email and wrong
// password collapse into the one ErrInvalidCredentials outcome.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Account, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	acct, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		s.Hasher.Verify(dummyDigest, password)
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Verify(acct.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	// zero out the hash before returning
	acct.PasswordHash = ""
	return acct, nil
}

// Profile resolves a verified token's account id to the live record. The
// account may have been deleted after the token was issued.
func (s *AuthService) Profile(ctx context.Context, accountID int64) (*model.Account, error) {
	acct, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	acct.PasswordHash = ""
	return acct, nil
}
