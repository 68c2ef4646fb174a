package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/models"
)

// DBTX is the slice of pgx both *pgxpool.Pool and pgx.Tx satisfy.
// Write methods take it explicitly so one transaction opened by the
// service layer spans every table touched by a conversion; there is no
// package-level connection handle.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ownerClause resolves the sector-owner column for WHERE clauses.
func ownerClause(o models.SectorOwner) (column string, id int, err error) {
	switch {
	case o.QuoteID != nil && o.BookingID != nil:
		return "", 0, apperrors.Validation("sector owner cannot be both quote and booking")
	case o.QuoteID != nil:
		return "quote_id", *o.QuoteID, nil
	case o.BookingID != nil:
		return "booking_id", *o.BookingID, nil
	default:
		return "", 0, apperrors.Validation("sector owner missing")
	}
}
