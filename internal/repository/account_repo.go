package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MorneNemdil/lovejoy-security-project/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

const uniqueViolation = "23505"

type AccountRepository struct {
	DB *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{DB: db}
}

// Create inserts a new account and returns the assigned id. Email
// uniqueness is enforced by the accounts_email_key constraint, so two
// concurrent registrations with the same email race safely: one insert
// wins, the other comes back as ErrDuplicateEmail.
func (r *AccountRepository) Create(ctx context.Context, name, email, phone, passwordHash string, isAdmin bool) (int64, error) {
	var id int64
	query := `INSERT INTO accounts (name, email, phone, password_hash, is_admin, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.DB.QueryRow(ctx, query, name, email, phone, passwordHash, isAdmin, time.Now()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return id, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT id, name, email, phone, password_hash, is_admin, reset_token, reset_token_expiry, created_at
			FROM accounts
			WHERE email=$1`
	return r.scanOne(ctx, query, email)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	query := `SELECT id, name, email, phone, password_hash, is_admin, reset_token, reset_token_expiry, created_at
			FROM accounts
			WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *AccountRepository) GetByResetToken(ctx context.Context, token string) (*model.Account, error) {
	query := `SELECT id, name, email, phone, password_hash, is_admin, reset_token, reset_token_expiry, created_at
			FROM accounts
			WHERE reset_token=$1`
	return r.scanOne(ctx, query, token)
}

func (r *AccountRepository) scanOne(ctx context.Context, query string, arg interface{}) (*model.Account, error) {
	var a model.Account
	err := r.DB.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.PasswordHash,
		&a.IsAdmin, &a.ResetToken, &a.ResetTokenExpiry, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) SetResetToken(ctx context.Context, accountID int64, token string, expiry time.Time) error {
	query := `UPDATE accounts SET reset_token=$1, reset_token_expiry=$2 WHERE id=$3`
	tag, err := r.DB.Exec(ctx, query, token, expiry, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) ClearResetToken(ctx context.Context, accountID int64) error {
	query := `UPDATE accounts SET reset_token=NULL, reset_token_expiry=NULL WHERE id=$1`
	_, err := r.DB.Exec(ctx, query, accountID)
	return err
}

// UpdatePassword replaces the password hash and invalidates any pending
// reset token in the same statement.
func (r *AccountRepository) UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error {
	query := `UPDATE accounts SET password_hash=$1, reset_token=NULL, reset_token_expiry=NULL WHERE id=$2`
	tag, err := r.DB.Exec(ctx, query, passwordHash, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
