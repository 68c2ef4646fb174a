package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travel-backend/internal/models"
)

// ReferralRepository stores the one referral a transaction may carry.
// Only the referrer and their percentage live here; the monetary split
// is derived at read time from the current overall commission.
type ReferralRepository struct {
	DB *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{DB: db}
}

// Upsert writes the transaction's referral, replacing any previous one.
func (r *ReferralRepository) Upsert(ctx context.Context, q DBTX, transactionID int, in models.ReferralInput) (*models.Referral, error) {
	var ref models.Referral
	err := q.QueryRow(ctx,
		`INSERT INTO referrals(transaction_id, referrer_id, potential_commission)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (transaction_id)
		 DO UPDATE SET referrer_id=EXCLUDED.referrer_id,
		               potential_commission=EXCLUDED.potential_commission,
		               updated_at=NOW()
		 RETURNING id, transaction_id, referrer_id, potential_commission, created_at, updated_at`,
		transactionID, in.ReferrerID, in.PotentialCommission,
	).Scan(&ref.ID, &ref.TransactionID, &ref.ReferrerID, &ref.PotentialCommission,
		&ref.CreatedAt, &ref.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// GetByTransaction returns (nil, nil) when the transaction has no
// referral; most don't.
func (r *ReferralRepository) GetByTransaction(ctx context.Context, q DBTX, transactionID int) (*models.Referral, error) {
	var ref models.Referral
	err := q.QueryRow(ctx,
		`SELECT id, transaction_id, referrer_id, potential_commission, created_at, updated_at
		 FROM referrals WHERE transaction_id=$1`, transactionID,
	).Scan(&ref.ID, &ref.TransactionID, &ref.ReferrerID, &ref.PotentialCommission,
		&ref.CreatedAt, &ref.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *ReferralRepository) Delete(ctx context.Context, q DBTX, transactionID int) error {
	_, err := q.Exec(ctx, `DELETE FROM referrals WHERE transaction_id=$1`, transactionID)
	return err
}
