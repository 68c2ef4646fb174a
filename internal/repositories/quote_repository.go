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

type QuoteRepository struct {
	DB *pgxpool.Pool
}

func NewQuoteRepository(db *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{DB: db}
}

const quoteColumns = `id, transaction_id, is_primary, holiday_type, main_tour_operator_id,
	sales_price, commission, discount, service_charge,
	adults, children, infants, no_of_nights, transfer_type,
	accommodation_id, main_board_basis_id, room_type, check_in_date_time,
	is_future_deal, future_deal_date, date_expiry,
	date_created, updated_at, deleted_at`

func scanQuote(row pgx.Row) (*models.Quote, error) {
	var q models.Quote
	err := row.Scan(&q.ID, &q.TransactionID, &q.IsPrimary, &q.HolidayType, &q.MainTourOperatorID,
		&q.SalesPrice, &q.PackageCommission, &q.Discount, &q.ServiceCharge,
		&q.Adults, &q.Children, &q.Infants, &q.NoOfNights, &q.TransferType,
		&q.AccommodationID, &q.MainBoardBasisID, &q.RoomType, &q.CheckInDateTime,
		&q.IsFutureDeal, &q.FutureDealDate, &q.DateExpiry,
		&q.DateCreated, &q.UpdatedAt, &q.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuoteRepository) Insert(ctx context.Context, q DBTX, quote *models.Quote) error {
	return q.QueryRow(ctx,
		`INSERT INTO quotes(transaction_id, is_primary, holiday_type, main_tour_operator_id,
		                    sales_price, commission, discount, service_charge,
		                    adults, children, infants, no_of_nights, transfer_type,
		                    accommodation_id, main_board_basis_id, room_type, check_in_date_time,
		                    is_future_deal, future_deal_date, date_expiry)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		 RETURNING id, date_created, updated_at`,
		quote.TransactionID, quote.IsPrimary, quote.HolidayType, quote.MainTourOperatorID,
		quote.SalesPrice, quote.PackageCommission, quote.Discount, quote.ServiceCharge,
		quote.Adults, quote.Children, quote.Infants, quote.NoOfNights, quote.TransferType,
		quote.AccommodationID, quote.MainBoardBasisID, quote.RoomType, quote.CheckInDateTime,
		quote.IsFutureDeal, quote.FutureDealDate, quote.DateExpiry,
	).Scan(&quote.ID, &quote.DateCreated, &quote.UpdatedAt)
}

// Update writes the quote's scalar fields. Sector rows are touched only
// through the reconciler, never here.
func (r *QuoteRepository) Update(ctx context.Context, q DBTX, quote *models.Quote) error {
	tag, err := q.Exec(ctx,
		`UPDATE quotes
		 SET holiday_type=$1, main_tour_operator_id=$2,
		     sales_price=$3, commission=$4, discount=$5, service_charge=$6,
		     adults=$7, children=$8, infants=$9, no_of_nights=$10, transfer_type=$11,
		     accommodation_id=$12, main_board_basis_id=$13, room_type=$14, check_in_date_time=$15,
		     updated_at=NOW()
		 WHERE id=$16 AND deleted_at IS NULL`,
		quote.HolidayType, quote.MainTourOperatorID,
		quote.SalesPrice, quote.PackageCommission, quote.Discount, quote.ServiceCharge,
		quote.Adults, quote.Children, quote.Infants, quote.NoOfNights, quote.TransferType,
		quote.AccommodationID, quote.MainBoardBasisID, quote.RoomType, quote.CheckInDateTime,
		quote.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("quote %d not found", quote.ID)
	}
	return nil
}

func (r *QuoteRepository) Get(ctx context.Context, q DBTX, id int) (*models.Quote, error) {
	quote, err := scanQuote(q.QueryRow(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE id=$1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("quote %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *QuoteRepository) ListByTransaction(ctx context.Context, q DBTX, transactionID int) ([]*models.Quote, error) {
	rows, err := q.Query(ctx,
		`SELECT `+quoteColumns+` FROM quotes
		 WHERE transaction_id=$1 AND deleted_at IS NULL
		 ORDER BY is_primary DESC, date_created ASC`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, quote)
	}
	return out, rows.Err()
}

// HasQuotes reports whether the transaction already carries a live
// quote. The first quote of a transaction is the primary one.
func (r *QuoteRepository) HasQuotes(ctx context.Context, q DBTX, transactionID int) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM quotes WHERE transaction_id=$1 AND deleted_at IS NULL)`,
		transactionID).Scan(&exists)
	return exists, err
}

func (r *QuoteRepository) SetFutureDeal(ctx context.Context, q DBTX, id int, futureDate *time.Time) error {
	tag, err := q.Exec(ctx,
		`UPDATE quotes
		 SET is_future_deal=TRUE, future_deal_date=$1, date_expiry=NULL, updated_at=NOW()
		 WHERE id=$2 AND deleted_at IS NULL`, futureDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("quote %d not found", id)
	}
	return nil
}

func (r *QuoteRepository) UnsetFutureDeal(ctx context.Context, q DBTX, id int, newExpiry time.Time) error {
	tag, err := q.Exec(ctx,
		`UPDATE quotes
		 SET is_future_deal=FALSE, future_deal_date=NULL, date_expiry=$1, updated_at=NOW()
		 WHERE id=$2 AND deleted_at IS NULL`, newExpiry, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("quote %d not found", id)
	}
	return nil
}

func (r *QuoteRepository) SoftDelete(ctx context.Context, q DBTX, id int) error {
	tag, err := q.Exec(ctx,
		`UPDATE quotes SET deleted_at=NOW(), updated_at=NOW()
		 WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("quote %d not found", id)
	}
	return nil
}
