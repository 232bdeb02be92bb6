package repository

import (
	"context"
	"time"

	"github.com/MorneNemdil/lovejoy-security-project/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EvaluationRepository struct {
	DB *pgxpool.Pool
}

func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) Create(ctx context.Context, accountID int64, details, contactMethod string, photoFilename *string) (int64, error) {
	var id int64
	query := `INSERT INTO evaluation_requests (account_id, details, contact_method, photo_filename, created_at)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, accountID, details, contactMethod, photoFilename, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ListAllWithOwner returns every evaluation request joined with the owning
// account's email, oldest first.
func (r *EvaluationRepository) ListAllWithOwner(ctx context.Context) ([]model.EvaluationRequestWithOwner, error) {
	query := `
		SELECT r.id, r.details, r.contact_method, r.photo_filename, r.account_id, a.email
		FROM evaluation_requests r
		JOIN accounts a ON a.id = r.account_id
		ORDER BY r.id
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.EvaluationRequestWithOwner{}
	for rows.Next() {
		var m model.EvaluationRequestWithOwner
		if err := rows.Scan(&m.ID, &m.Details, &m.ContactMethod, &m.PhotoFilename, &m.AccountID, &m.OwnerEmail); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
