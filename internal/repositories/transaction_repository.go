package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/models"
)

type TransactionRepository struct {
	DB *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) Insert(ctx context.Context, q DBTX, t *models.Transaction) error {
	return q.QueryRow(ctx,
		`INSERT INTO transactions(status, client_id, agent_id, lead_source, holiday_type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.Status, t.ClientID, t.AgentID, t.LeadSource, t.HolidayType,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TransactionRepository) Get(ctx context.Context, q DBTX, id int) (*models.Transaction, error) {
	return r.get(ctx, q, id, false)
}

// GetForUpdate locks the transaction row for the rest of the unit of
// work. Phase-transition guards read the status off this row.
func (r *TransactionRepository) GetForUpdate(ctx context.Context, q DBTX, id int) (*models.Transaction, error) {
	return r.get(ctx, q, id, true)
}

func (r *TransactionRepository) get(ctx context.Context, q DBTX, id int, forUpdate bool) (*models.Transaction, error) {
	query := `SELECT id, status, client_id, agent_id, lead_source, holiday_type, created_at, updated_at
	          FROM transactions WHERE id=$1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var t models.Transaction
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Status, &t.ClientID, &t.AgentID, &t.LeadSource, &t.HolidayType,
		&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("transaction %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SetStatus flips the phase and optionally reassigns client/agent in
// the same statement.
func (r *TransactionRepository) SetStatus(ctx context.Context, q DBTX, id int, status models.TransactionStatus, clientID, agentID *int) error {
	tag, err := q.Exec(ctx,
		`UPDATE transactions
		 SET status=$1,
		     client_id=COALESCE($2, client_id),
		     agent_id=COALESCE($3, agent_id),
		     updated_at=NOW()
		 WHERE id=$4`,
		status, clientID, agentID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("transaction %d not found", id)
	}
	return nil
}

// ListByStatus feeds the pipeline board. Recency sort: the +48h
// date_created snooze on enquiry status changes deliberately reorders
// this listing.
func (r *TransactionRepository) ListByStatus(ctx context.Context, status models.TransactionStatus, limit int) ([]*models.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, status, client_id, agent_id, lead_source, holiday_type, created_at, updated_at
		 FROM transactions
		 WHERE status=$1
		 ORDER BY created_at DESC
		 LIMIT $2`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Status, &t.ClientID, &t.AgentID, &t.LeadSource,
			&t.HolidayType, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
