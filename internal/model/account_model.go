package model

import "time"

type Account struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"` // never JSON-encode
	IsAdmin      bool       `json:"is_admin"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`

	// Both nil or both set.
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}
