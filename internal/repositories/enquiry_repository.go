package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/models"
)

type EnquiryRepository struct {
	DB *pgxpool.Pool
}

func NewEnquiryRepository(db *pgxpool.Pool) *EnquiryRepository {
	return &EnquiryRepository{DB: db}
}

func (r *EnquiryRepository) Insert(ctx context.Context, q DBTX, e *models.Enquiry) error {
	return q.QueryRow(ctx,
		`INSERT INTO enquiries(transaction_id, status, adults, children, infants, no_of_nights,
		                       budget, notes, is_future_deal, future_deal_date, date_expiry, departure_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, date_created, updated_at`,
		e.TransactionID, e.Status, e.Adults, e.Children, e.Infants, e.NoOfNights,
		e.Budget, e.Notes, e.IsFutureDeal, e.FutureDealDate, e.DateExpiry, e.DepartureDate,
	).Scan(&e.ID, &e.DateCreated, &e.UpdatedAt)
}

// InsertSelections stores the reference-data picks captured with a new
// enquiry as simple child rows. Creation only; these lists are never
// reconciled afterwards.
func (r *EnquiryRepository) InsertSelections(ctx context.Context, q DBTX, e *models.Enquiry) error {
	tables := []struct {
		table string
		ids   []int
	}{
		{"enquiry_destinations", e.DestinationIDs},
		{"enquiry_departure_airports", e.DepartureAirportIDs},
		{"enquiry_departure_ports", e.DeparturePortIDs},
		{"enquiry_cruise_lines", e.CruiseLineIDs},
		{"enquiry_board_basis", e.BoardBasisIDs},
		{"enquiry_resorts", e.ResortIDs},
		{"enquiry_accommodations", e.AccommodationIDs},
	}
	for _, t := range tables {
		for _, refID := range t.ids {
			if _, err := q.Exec(ctx,
				`INSERT INTO `+t.table+`(enquiry_id, ref_id) VALUES ($1, $2)`,
				e.ID, refID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *EnquiryRepository) Get(ctx context.Context, q DBTX, id int) (*models.Enquiry, error) {
	var e models.Enquiry
	err := q.QueryRow(ctx,
		`SELECT id, transaction_id, status, adults, children, infants, no_of_nights,
		        budget, COALESCE(notes, ''), is_future_deal, future_deal_date, date_expiry,
		        departure_date, date_created, updated_at, deleted_at
		 FROM enquiries WHERE id=$1 AND deleted_at IS NULL`, id,
	).Scan(&e.ID, &e.TransactionID, &e.Status, &e.Adults, &e.Children, &e.Infants,
		&e.NoOfNights, &e.Budget, &e.Notes, &e.IsFutureDeal, &e.FutureDealDate,
		&e.DateExpiry, &e.DepartureDate, &e.DateCreated, &e.UpdatedAt, &e.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("enquiry %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnquiryRepository) GetByTransaction(ctx context.Context, q DBTX, transactionID int) (*models.Enquiry, error) {
	var e models.Enquiry
	err := q.QueryRow(ctx,
		`SELECT id, transaction_id, status, adults, children, infants, no_of_nights,
		        budget, COALESCE(notes, ''), is_future_deal, future_deal_date, date_expiry,
		        departure_date, date_created, updated_at, deleted_at
		 FROM enquiries WHERE transaction_id=$1 AND deleted_at IS NULL`, transactionID,
	).Scan(&e.ID, &e.TransactionID, &e.Status, &e.Adults, &e.Children, &e.Infants,
		&e.NoOfNights, &e.Budget, &e.Notes, &e.IsFutureDeal, &e.FutureDealDate,
		&e.DateExpiry, &e.DepartureDate, &e.DateCreated, &e.UpdatedAt, &e.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("enquiry for transaction %d not found", transactionID)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateStatus writes the new status. Any status except LOST also bumps
// date_created forward two days so the reactivated lead resurfaces near
// the top of the recency-sorted pipeline.
func (r *EnquiryRepository) UpdateStatus(ctx context.Context, q DBTX, id int, status string, bumpedCreated *time.Time) error {
	var tagErr error
	var affected int64
	if bumpedCreated != nil {
		tag, err := q.Exec(ctx,
			`UPDATE enquiries SET status=$1, date_created=$2, updated_at=NOW()
			 WHERE id=$3 AND deleted_at IS NULL`, status, bumpedCreated, id)
		tagErr, affected = err, tag.RowsAffected()
	} else {
		tag, err := q.Exec(ctx,
			`UPDATE enquiries SET status=$1, updated_at=NOW()
			 WHERE id=$2 AND deleted_at IS NULL`, status, id)
		tagErr, affected = err, tag.RowsAffected()
	}
	if tagErr != nil {
		return tagErr
	}
	if affected == 0 {
		return apperrors.NotFound("enquiry %d not found", id)
	}
	return nil
}

func (r *EnquiryRepository) SetFutureDeal(ctx context.Context, q DBTX, id int, futureDate *time.Time) error {
	tag, err := q.Exec(ctx,
		`UPDATE enquiries
		 SET is_future_deal=TRUE, future_deal_date=$1, date_expiry=NULL, updated_at=NOW()
		 WHERE id=$2 AND deleted_at IS NULL`, futureDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("enquiry %d not found", id)
	}
	return nil
}

func (r *EnquiryRepository) UnsetFutureDeal(ctx context.Context, q DBTX, id int, newExpiry time.Time) error {
	tag, err := q.Exec(ctx,
		`UPDATE enquiries
		 SET is_future_deal=FALSE, future_deal_date=NULL, date_expiry=$1, updated_at=NOW()
		 WHERE id=$2 AND deleted_at IS NULL`, newExpiry, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("enquiry %d not found", id)
	}
	return nil
}

func (r *EnquiryRepository) SoftDelete(ctx context.Context, q DBTX, id int) error {
	tag, err := q.Exec(ctx,
		`UPDATE enquiries SET deleted_at=NOW(), updated_at=NOW()
		 WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("enquiry %d not found", id)
	}
	return nil
}
