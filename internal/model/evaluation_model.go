package model

import "time"

type EvaluationRequest struct {
	ID            int64      `json:"id"`
	Details       string     `json:"details"`
	ContactMethod string     `json:"contact_method"`
	PhotoFilename *string    `json:"photo_filename"`
	AccountID     int64      `json:"user_id"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// EvaluationRequestWithOwner is the admin listing row: a request joined
// with the owning account's email.
type EvaluationRequestWithOwner struct {
	ID            int64   `json:"id"`
	Details       string  `json:"details"`
	ContactMethod string  `json:"contact_method"`
	PhotoFilename *string `json:"photo_filename"`
	AccountID     int64   `json:"user_id"`
	OwnerEmail    string  `json:"user_email"`
}
