package services

import (
	"context"
	"testing"
	"time"

	"github.com/MorneNemdil/lovejoy-security-project/internal/model"
	"github.com/MorneNemdil/lovejoy-security-project/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccountStore is an in-memory AccountStore shared by the service
// tests. Lookups return copies, like a real store would.
type fakeAccountStore struct {
	nextID   int64
	accounts map[int64]*model.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[int64]*model.Account{}}
}

func (f *fakeAccountStore) Create(ctx context.Context, name, email, phone, passwordHash string, isAdmin bool) (int64, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return 0, repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	f.accounts[f.nextID] = &model.Account{
		ID: f.nextID, Name: name, Email: email, Phone: phone,
		PasswordHash: passwordHash, IsAdmin: isAdmin,
	}
	return f.nextID, nil
}

func (f *fakeAccountStore) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountStore) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountStore) GetByResetToken(ctx context.Context, token string) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.ResetToken != nil && *a.ResetToken == token {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountStore) SetResetToken(ctx context.Context, accountID int64, token string, expiry time.Time) error {
	a, ok := f.accounts[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	a.ResetToken = &token
	a.ResetTokenExpiry = &expiry
	return nil
}

func (f *fakeAccountStore) ClearResetToken(ctx context.Context, accountID int64) error {
	a, ok := f.accounts[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	a.ResetToken = nil
	a.ResetTokenExpiry = nil
	return nil
}

func (f *fakeAccountStore) UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error {
	a, ok := f.accounts[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	a.PasswordHash = passwordHash
	a.ResetToken = nil
	a.ResetTokenExpiry = nil
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	svc := NewAuthService(store, NewPasswordHasher())

	id, err := svc.Register(ctx, "Jane", "jane@example.com", "0123456789", "Abc123!x")
	require.NoError(t, err)
	require.NotZero(t, id)

	acct := store.accounts[id]
	assert.False(t, acct.IsAdmin)
	assert.NotEqual(t, "Abc123!x", acct.PasswordHash, "plaintext must never be stored")
	assert.True(t, svc.Hasher.Verify(acct.PasswordHash, "Abc123!x"))
}

func TestRegisterBootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	svc := NewAuthService(store, NewPasswordHasher())

	id, err := svc.Register(ctx, "Lovejoy", BootstrapAdminEmail, "0123456789", "Abc123!x")
	require.NoError(t, err)
	assert.True(t, store.accounts[id].IsAdmin)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	svc := NewAuthService(store, NewPasswordHasher())

	_, err := svc.Register(ctx, "Jane", "jane@example.com", "0123456789", "Abc123!x")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Jane", "jane@example.com", "0987654321", "Xyz789!a")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegisterMissingFields(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeAccountStore(), NewPasswordHasher())

	for _, args := range [][4]string{
		{"", "jane@example.com", "0123456789", "Abc123!x"},
		{"Jane", "", "0123456789", "Abc123!x"},
		{"Jane", "jane@example.com", "", "Abc123!x"},
		{"Jane", "jane@example.com", "0123456789", ""},
	} {
		_, err := svc.Register(ctx, args[0], args[1], args[2], args[3])
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	svc := NewAuthService(store, NewPasswordHasher())

	_, err := svc.Register(ctx, "Jane", "jane@example.com", "0123456789", "abc123!x")
	var weak *WeakPasswordError
	require.ErrorAs(t, err, &weak)
	assert.Equal(t, "password must contain an uppercase letter", weak.Reason)
	assert.Empty(t, store.accounts, "nothing persisted on policy failure")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	svc := NewAuthService(store, NewPasswordHasher())

	_, err := svc.Register(ctx, "Jane", "jane@example.com", "0123456789", "Abc123!x")
	require.NoError(t, err)

	acct, err := svc.Login(ctx, "jane@example.com", "Abc123!x")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", acct.Email)
	assert.Empty(t, acct.PasswordHash, "hash must not leave the service")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	svc := NewAuthService(store, NewPasswordHasher())

	_, err := svc.Register(ctx, "Jane", "jane@example.com", "0123456789", "Abc123!x")
	require.NoError(t, err)

	_, wrongPw := svc.Login(ctx, "jane@example.com", "WrongPw1!")
	_, noUser := svc.Login(ctx, "nobody@example.com", "Abc123!x")

	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPw, noUser, "both failures must be the same outcome")
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	svc := NewAuthService(store, NewPasswordHasher())

	id, err := svc.Register(ctx, "Jane", "jane@example.com", "0123456789", "Abc123!x")
	require.NoError(t, err)

	acct, err := svc.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane", acct.Name)

	// account deleted after the token was issued
	_, err = svc.Profile(ctx, id+1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
