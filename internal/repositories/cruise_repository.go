package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travel-backend/internal/models"
)

// CruiseRepository stores the single cruise record a cruise-type quote
// or booking owns, plus its itinerary days and extras. Itinerary and
// extras carry no client-side identity, so writes replace the sets.
type CruiseRepository struct {
	DB *pgxpool.Pool
}

func NewCruiseRepository(db *pgxpool.Pool) *CruiseRepository {
	return &CruiseRepository{DB: db}
}

// UpsertForOwner writes the owner's cruise row, creating it on first
// save. The cruise id is scanned back into c.
func (r *CruiseRepository) UpsertForOwner(ctx context.Context, q DBTX, owner models.SectorOwner, c *models.Cruise) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}

	var existingID int
	err = q.QueryRow(ctx,
		`SELECT id FROM cruises WHERE `+col+`=$1`, ownerID).Scan(&existingID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		err = q.QueryRow(ctx,
			`INSERT INTO cruises(quote_id, booking_id, cruise_line_id, cruise_ship_id,
			                     cruise_date, cabin_type, cabin_number, cost, commission)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			 RETURNING id`,
			owner.QuoteID, owner.BookingID, c.CruiseLineID, c.CruiseShipID,
			c.CruiseDate, c.CabinType, c.CabinNumber, c.Cost, c.Commission,
		).Scan(&c.ID)
		if err != nil {
			return err
		}
	} else {
		c.ID = existingID
		if _, err := q.Exec(ctx,
			`UPDATE cruises
			 SET cruise_line_id=$1, cruise_ship_id=$2, cruise_date=$3,
			     cabin_type=$4, cabin_number=$5, cost=$6, commission=$7
			 WHERE id=$8`,
			c.CruiseLineID, c.CruiseShipID, c.CruiseDate,
			c.CabinType, c.CabinNumber, c.Cost, c.Commission, c.ID); err != nil {
			return err
		}
	}
	c.QuoteID, c.BookingID = owner.QuoteID, owner.BookingID
	return nil
}

// ReplaceItinerary swaps the cruise's full day-by-day voyage list.
func (r *CruiseRepository) ReplaceItinerary(ctx context.Context, q DBTX, cruiseID int, days []models.CruiseItineraryDay) error {
	if _, err := q.Exec(ctx,
		`DELETE FROM cruise_itinerary_days WHERE cruise_id=$1`, cruiseID); err != nil {
		return err
	}
	for i := range days {
		d := &days[i]
		if err := q.QueryRow(ctx,
			`INSERT INTO cruise_itinerary_days(cruise_id, day, port_id, description)
			 VALUES ($1,$2,$3,$4) RETURNING id`,
			cruiseID, d.Day, d.PortID, d.Description).Scan(&d.ID); err != nil {
			return err
		}
		d.CruiseID = cruiseID
	}
	return nil
}

// ReplaceExtras swaps the cruise's full extras list.
func (r *CruiseRepository) ReplaceExtras(ctx context.Context, q DBTX, cruiseID int, extras []models.CruiseExtra) error {
	if _, err := q.Exec(ctx,
		`DELETE FROM cruise_extras WHERE cruise_id=$1`, cruiseID); err != nil {
		return err
	}
	for i := range extras {
		e := &extras[i]
		if err := q.QueryRow(ctx,
			`INSERT INTO cruise_extras(cruise_id, name, cost, commission)
			 VALUES ($1,$2,$3,$4) RETURNING id`,
			cruiseID, e.Name, e.Cost, e.Commission).Scan(&e.ID); err != nil {
			return err
		}
		e.CruiseID = cruiseID
	}
	return nil
}

// GetForOwner loads the cruise with its lists. Returns (nil, nil) when
// the owner has no cruise, which is the normal case for non-cruise
// holiday types.
func (r *CruiseRepository) GetForOwner(ctx context.Context, q DBTX, owner models.SectorOwner) (*models.CruiseDetail, error) {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}

	var d models.CruiseDetail
	err = q.QueryRow(ctx,
		`SELECT id, quote_id, booking_id, cruise_line_id, cruise_ship_id,
		        cruise_date, cabin_type, cabin_number, cost, commission
		 FROM cruises WHERE `+col+`=$1`, ownerID,
	).Scan(&d.Cruise.ID, &d.Cruise.QuoteID, &d.Cruise.BookingID, &d.Cruise.CruiseLineID,
		&d.Cruise.CruiseShipID, &d.Cruise.CruiseDate, &d.Cruise.CabinType,
		&d.Cruise.CabinNumber, &d.Cruise.Cost, &d.Cruise.Commission)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx,
		`SELECT id, cruise_id, day, port_id, description
		 FROM cruise_itinerary_days WHERE cruise_id=$1 ORDER BY day`, d.Cruise.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var day models.CruiseItineraryDay
		if err := rows.Scan(&day.ID, &day.CruiseID, &day.Day, &day.PortID, &day.Description); err != nil {
			return nil, err
		}
		d.Itinerary = append(d.Itinerary, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	extraRows, err := q.Query(ctx,
		`SELECT id, cruise_id, name, cost, commission
		 FROM cruise_extras WHERE cruise_id=$1 ORDER BY id`, d.Cruise.ID)
	if err != nil {
		return nil, err
	}
	defer extraRows.Close()
	for extraRows.Next() {
		var e models.CruiseExtra
		if err := extraRows.Scan(&e.ID, &e.CruiseID, &e.Name, &e.Cost, &e.Commission); err != nil {
			return nil, err
		}
		d.Extras = append(d.Extras, e)
	}
	return &d, extraRows.Err()
}

// DeleteForOwner removes the owner's cruise and, via cascade, its
// itinerary and extras. Used when a save switches the holiday type away
// from cruise.
func (r *CruiseRepository) DeleteForOwner(ctx context.Context, q DBTX, owner models.SectorOwner) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `DELETE FROM cruises WHERE `+col+`=$1`, ownerID)
	return err
}
