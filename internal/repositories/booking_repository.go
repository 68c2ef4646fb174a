package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/models"
)

type BookingRepository struct {
	DB *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{DB: db}
}

const bookingColumns = `id, transaction_id, booking_reference, holiday_type, main_tour_operator_id,
	sales_price, commission, discount, service_charge,
	adults, children, infants, no_of_nights, transfer_type,
	accommodation_id, main_board_basis_id, room_type, check_in_date_time,
	date_created, updated_at, deleted_at`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.TransactionID, &b.BookingReference, &b.HolidayType, &b.MainTourOperatorID,
		&b.SalesPrice, &b.PackageCommission, &b.Discount, &b.ServiceCharge,
		&b.Adults, &b.Children, &b.Infants, &b.NoOfNights, &b.TransferType,
		&b.AccommodationID, &b.MainBoardBasisID, &b.RoomType, &b.CheckInDateTime,
		&b.DateCreated, &b.UpdatedAt, &b.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Insert(ctx context.Context, q DBTX, b *models.Booking) error {
	return q.QueryRow(ctx,
		`INSERT INTO bookings(transaction_id, booking_reference, holiday_type, main_tour_operator_id,
		                      sales_price, commission, discount, service_charge,
		                      adults, children, infants, no_of_nights, transfer_type,
		                      accommodation_id, main_board_basis_id, room_type, check_in_date_time)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		 RETURNING id, date_created, updated_at`,
		b.TransactionID, b.BookingReference, b.HolidayType, b.MainTourOperatorID,
		b.SalesPrice, b.PackageCommission, b.Discount, b.ServiceCharge,
		b.Adults, b.Children, b.Infants, b.NoOfNights, b.TransferType,
		b.AccommodationID, b.MainBoardBasisID, b.RoomType, b.CheckInDateTime,
	).Scan(&b.ID, &b.DateCreated, &b.UpdatedAt)
}

func (r *BookingRepository) Update(ctx context.Context, q DBTX, b *models.Booking) error {
	tag, err := q.Exec(ctx,
		`UPDATE bookings
		 SET booking_reference=$1, holiday_type=$2, main_tour_operator_id=$3,
		     sales_price=$4, commission=$5, discount=$6, service_charge=$7,
		     adults=$8, children=$9, infants=$10, no_of_nights=$11, transfer_type=$12,
		     accommodation_id=$13, main_board_basis_id=$14, room_type=$15, check_in_date_time=$16,
		     updated_at=NOW()
		 WHERE id=$17 AND deleted_at IS NULL`,
		b.BookingReference, b.HolidayType, b.MainTourOperatorID,
		b.SalesPrice, b.PackageCommission, b.Discount, b.ServiceCharge,
		b.Adults, b.Children, b.Infants, b.NoOfNights, b.TransferType,
		b.AccommodationID, b.MainBoardBasisID, b.RoomType, b.CheckInDateTime,
		b.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("booking %d not found", b.ID)
	}
	return nil
}

func (r *BookingRepository) Get(ctx context.Context, q DBTX, id int) (*models.Booking, error) {
	b, err := scanBooking(q.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id=$1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("booking %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) GetByTransaction(ctx context.Context, q DBTX, transactionID int) (*models.Booking, error) {
	b, err := scanBooking(q.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE transaction_id=$1 AND deleted_at IS NULL`, transactionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("booking for transaction %d not found", transactionID)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SoftDelete hides the booking; there is no transition back to a quote.
func (r *BookingRepository) SoftDelete(ctx context.Context, q DBTX, id int) error {
	tag, err := q.Exec(ctx,
		`UPDATE bookings SET deleted_at=NOW(), updated_at=NOW()
		 WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("booking %d not found", id)
	}
	return nil
}
