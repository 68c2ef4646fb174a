package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/models"
)

// PassengerRepository stores manifest rows. A passenger hangs off
// exactly one of a quote, a booking, or a lounge pass; the lists carry
// no client-side identity and are replaced wholesale on save.
type PassengerRepository struct {
	DB *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) *PassengerRepository {
	return &PassengerRepository{DB: db}
}

func (r *PassengerRepository) Insert(ctx context.Context, q DBTX, p *models.Passenger) error {
	if p.OwnerCount() != 1 {
		return apperrors.Validation("passenger must belong to exactly one of quote, booking or lounge pass")
	}
	return q.QueryRow(ctx,
		`INSERT INTO passengers(quote_id, booking_id, lounge_pass_id, first_name, last_name, age, type)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING id`,
		p.QuoteID, p.BookingID, p.LoungePassID, p.FirstName, p.LastName, p.Age, p.Type,
	).Scan(&p.ID)
}

// ReplaceForOwner swaps the owner's whole manifest.
func (r *PassengerRepository) ReplaceForOwner(ctx context.Context, q DBTX, owner models.SectorOwner, passengers []models.Passenger) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx,
		`DELETE FROM passengers WHERE `+col+`=$1`, ownerID); err != nil {
		return err
	}
	for i := range passengers {
		p := &passengers[i]
		p.QuoteID, p.BookingID, p.LoungePassID = owner.QuoteID, owner.BookingID, nil
		if err := r.Insert(ctx, q, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *PassengerRepository) ListForOwner(ctx context.Context, q DBTX, owner models.SectorOwner) ([]models.Passenger, error) {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx,
		`SELECT id, quote_id, booking_id, lounge_pass_id, first_name, last_name, age, type
		 FROM passengers WHERE `+col+`=$1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Passenger
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.ID, &p.QuoteID, &p.BookingID, &p.LoungePassID,
			&p.FirstName, &p.LastName, &p.Age, &p.Type); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
