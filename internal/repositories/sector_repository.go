package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/models"
	"travel-backend/internal/pricing"
)

// SectorRepository owns every identified sector table. All writes go
// through the reconciler's diff; nothing else inserts or deletes sector
// rows. The tour-operator attribution rule is applied here, at write
// time: rows included in the package are persisted against the phase
// entity's main operator regardless of what the caller sent.
type SectorRepository struct {
	DB *pgxpool.Pool
}

func NewSectorRepository(db *pgxpool.Pool) *SectorRepository {
	return &SectorRepository{DB: db}
}

// Delete removes rows by id for one sector table, constrained to the
// owner so a stale id can never reach across phase entities.
func (r *SectorRepository) deleteRows(ctx context.Context, q DBTX, table string, owner models.SectorOwner, ids []int) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := q.Exec(ctx,
			`DELETE FROM `+table+` WHERE id=$1 AND `+col+`=$2`, id, ownerID); err != nil {
			return err
		}
	}
	return nil
}

// ---- Flights ----

func (r *SectorRepository) ListFlights(ctx context.Context, q DBTX, owner models.SectorOwner) ([]models.FlightSector, error) {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx,
		`SELECT id, quote_id, booking_id, tour_operator_id, cost, commission, is_included_in_package,
		        departing_airport_id, arrival_airport_id, departure_date_time, arrival_date_time,
		        flight_number, airline
		 FROM flight_sectors WHERE `+col+`=$1 ORDER BY departure_date_time, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.FlightSector
	for rows.Next() {
		var f models.FlightSector
		if err := rows.Scan(&f.ID, &f.QuoteID, &f.BookingID, &f.TourOperatorID, &f.Cost, &f.Commission,
			&f.IsIncludedInPackage, &f.DepartingAirportID, &f.ArrivalAirportID,
			&f.DepartureDateTime, &f.ArrivalDateTime, &f.FlightNumber, &f.Airline); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *SectorRepository) InsertFlights(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, items []models.FlightSector) error {
	if _, _, err := ownerClause(owner); err != nil {
		return err
	}
	for i := range items {
		f := &items[i]
		op := pricing.AttributedOperator(f.IsIncludedInPackage, f.TourOperatorID, mainOperator)
		err := q.QueryRow(ctx,
			`INSERT INTO flight_sectors(quote_id, booking_id, tour_operator_id, cost, commission,
			                            is_included_in_package, departing_airport_id, arrival_airport_id,
			                            departure_date_time, arrival_date_time, flight_number, airline)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			 RETURNING id`,
			owner.QuoteID, owner.BookingID, op, f.Cost, f.Commission,
			f.IsIncludedInPackage, f.DepartingAirportID, f.ArrivalAirportID,
			f.DepartureDateTime, f.ArrivalDateTime, f.FlightNumber, f.Airline,
		).Scan(&f.ID)
		if err != nil {
			return err
		}
		f.TourOperatorID = op
		f.QuoteID, f.BookingID = owner.QuoteID, owner.BookingID
	}
	return nil
}

func (r *SectorRepository) UpdateFlight(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, f models.FlightSector) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	op := pricing.AttributedOperator(f.IsIncludedInPackage, f.TourOperatorID, mainOperator)
	tag, err := q.Exec(ctx,
		`UPDATE flight_sectors
		 SET tour_operator_id=$1, cost=$2, commission=$3, is_included_in_package=$4,
		     departing_airport_id=$5, arrival_airport_id=$6,
		     departure_date_time=$7, arrival_date_time=$8, flight_number=$9, airline=$10
		 WHERE id=$11 AND `+col+`=$12`,
		op, f.Cost, f.Commission, f.IsIncludedInPackage,
		f.DepartingAirportID, f.ArrivalAirportID,
		f.DepartureDateTime, f.ArrivalDateTime, f.FlightNumber, f.Airline,
		f.ID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict("flight sector %d no longer exists", f.ID)
	}
	return nil
}

func (r *SectorRepository) DeleteFlights(ctx context.Context, q DBTX, owner models.SectorOwner, ids []int) error {
	return r.deleteRows(ctx, q, "flight_sectors", owner, ids)
}

// ---- Hotels ----

func (r *SectorRepository) ListHotels(ctx context.Context, q DBTX, owner models.SectorOwner) ([]models.HotelSector, error) {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx,
		`SELECT id, quote_id, booking_id, tour_operator_id, cost, commission, is_included_in_package,
		        accommodation_id, name, board_basis_id, room_type, check_in_date_time, nights
		 FROM hotel_sectors WHERE `+col+`=$1 ORDER BY check_in_date_time NULLS LAST, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HotelSector
	for rows.Next() {
		var h models.HotelSector
		if err := rows.Scan(&h.ID, &h.QuoteID, &h.BookingID, &h.TourOperatorID, &h.Cost, &h.Commission,
			&h.IsIncludedInPackage, &h.AccommodationID, &h.Name, &h.BoardBasisID,
			&h.RoomType, &h.CheckInDateTime, &h.Nights); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *SectorRepository) InsertHotels(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, items []models.HotelSector) error {
	if _, _, err := ownerClause(owner); err != nil {
		return err
	}
	for i := range items {
		h := &items[i]
		op := pricing.AttributedOperator(h.IsIncludedInPackage, h.TourOperatorID, mainOperator)
		err := q.QueryRow(ctx,
			`INSERT INTO hotel_sectors(quote_id, booking_id, tour_operator_id, cost, commission,
			                           is_included_in_package, accommodation_id, name, board_basis_id,
			                           room_type, check_in_date_time, nights)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			 RETURNING id`,
			owner.QuoteID, owner.BookingID, op, h.Cost, h.Commission,
			h.IsIncludedInPackage, h.AccommodationID, h.Name, h.BoardBasisID,
			h.RoomType, h.CheckInDateTime, h.Nights,
		).Scan(&h.ID)
		if err != nil {
			return err
		}
		h.TourOperatorID = op
		h.QuoteID, h.BookingID = owner.QuoteID, owner.BookingID
	}
	return nil
}

func (r *SectorRepository) UpdateHotel(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, h models.HotelSector) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	op := pricing.AttributedOperator(h.IsIncludedInPackage, h.TourOperatorID, mainOperator)
	tag, err := q.Exec(ctx,
		`UPDATE hotel_sectors
		 SET tour_operator_id=$1, cost=$2, commission=$3, is_included_in_package=$4,
		     accommodation_id=$5, name=$6, board_basis_id=$7, room_type=$8,
		     check_in_date_time=$9, nights=$10
		 WHERE id=$11 AND `+col+`=$12`,
		op, h.Cost, h.Commission, h.IsIncludedInPackage,
		h.AccommodationID, h.Name, h.BoardBasisID, h.RoomType,
		h.CheckInDateTime, h.Nights,
		h.ID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict("hotel sector %d no longer exists", h.ID)
	}
	return nil
}

func (r *SectorRepository) DeleteHotels(ctx context.Context, q DBTX, owner models.SectorOwner, ids []int) error {
	return r.deleteRows(ctx, q, "hotel_sectors", owner, ids)
}

// ---- Transfers ----

func (r *SectorRepository) ListTransfers(ctx context.Context, q DBTX, owner models.SectorOwner) ([]models.TransferSector, error) {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx,
		`SELECT id, quote_id, booking_id, tour_operator_id, cost, commission, is_included_in_package,
		        transfer_type, pickup_location, dropoff_location, pickup_date_time
		 FROM transfer_sectors WHERE `+col+`=$1 ORDER BY pickup_date_time NULLS LAST, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TransferSector
	for rows.Next() {
		var t models.TransferSector
		if err := rows.Scan(&t.ID, &t.QuoteID, &t.BookingID, &t.TourOperatorID, &t.Cost, &t.Commission,
			&t.IsIncludedInPackage, &t.TransferType, &t.PickupLocation, &t.DropoffLocation,
			&t.PickupDateTime); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SectorRepository) InsertTransfers(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, items []models.TransferSector) error {
	if _, _, err := ownerClause(owner); err != nil {
		return err
	}
	for i := range items {
		t := &items[i]
		op := pricing.AttributedOperator(t.IsIncludedInPackage, t.TourOperatorID, mainOperator)
		err := q.QueryRow(ctx,
			`INSERT INTO transfer_sectors(quote_id, booking_id, tour_operator_id, cost, commission,
			                              is_included_in_package, transfer_type, pickup_location,
			                              dropoff_location, pickup_date_time)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			 RETURNING id`,
			owner.QuoteID, owner.BookingID, op, t.Cost, t.Commission,
			t.IsIncludedInPackage, t.TransferType, t.PickupLocation,
			t.DropoffLocation, t.PickupDateTime,
		).Scan(&t.ID)
		if err != nil {
			return err
		}
		t.TourOperatorID = op
		t.QuoteID, t.BookingID = owner.QuoteID, owner.BookingID
	}
	return nil
}

func (r *SectorRepository) UpdateTransfer(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, t models.TransferSector) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	op := pricing.AttributedOperator(t.IsIncludedInPackage, t.TourOperatorID, mainOperator)
	tag, err := q.Exec(ctx,
		`UPDATE transfer_sectors
		 SET tour_operator_id=$1, cost=$2, commission=$3, is_included_in_package=$4,
		     transfer_type=$5, pickup_location=$6, dropoff_location=$7, pickup_date_time=$8
		 WHERE id=$9 AND `+col+`=$10`,
		op, t.Cost, t.Commission, t.IsIncludedInPackage,
		t.TransferType, t.PickupLocation, t.DropoffLocation, t.PickupDateTime,
		t.ID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict("transfer sector %d no longer exists", t.ID)
	}
	return nil
}

func (r *SectorRepository) DeleteTransfers(ctx context.Context, q DBTX, owner models.SectorOwner, ids []int) error {
	return r.deleteRows(ctx, q, "transfer_sectors", owner, ids)
}

// ---- Car hire ----

func (r *SectorRepository) ListCarHires(ctx context.Context, q DBTX, owner models.SectorOwner) ([]models.CarHireSector, error) {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx,
		`SELECT id, quote_id, booking_id, tour_operator_id, cost, commission, is_included_in_package,
		        car_type, pickup_location, dropoff_location, pickup_date_time, dropoff_date_time,
		        reference_number
		 FROM car_hire_sectors WHERE `+col+`=$1 ORDER BY pickup_date_time NULLS LAST, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CarHireSector
	for rows.Next() {
		var c models.CarHireSector
		if err := rows.Scan(&c.ID, &c.QuoteID, &c.BookingID, &c.TourOperatorID, &c.Cost, &c.Commission,
			&c.IsIncludedInPackage, &c.CarType, &c.PickupLocation, &c.DropoffLocation,
			&c.PickupDateTime, &c.DropoffDateTime, &c.ReferenceNumber); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SectorRepository) InsertCarHires(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, items []models.CarHireSector) error {
	if _, _, err := ownerClause(owner); err != nil {
		return err
	}
	for i := range items {
		c := &items[i]
		op := pricing.AttributedOperator(c.IsIncludedInPackage, c.TourOperatorID, mainOperator)
		err := q.QueryRow(ctx,
			`INSERT INTO car_hire_sectors(quote_id, booking_id, tour_operator_id, cost, commission,
			                              is_included_in_package, car_type, pickup_location,
			                              dropoff_location, pickup_date_time, dropoff_date_time,
			                              reference_number)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			 RETURNING id`,
			owner.QuoteID, owner.BookingID, op, c.Cost, c.Commission,
			c.IsIncludedInPackage, c.CarType, c.PickupLocation,
			c.DropoffLocation, c.PickupDateTime, c.DropoffDateTime, c.ReferenceNumber,
		).Scan(&c.ID)
		if err != nil {
			return err
		}
		c.TourOperatorID = op
		c.QuoteID, c.BookingID = owner.QuoteID, owner.BookingID
	}
	return nil
}

func (r *SectorRepository) UpdateCarHire(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, c models.CarHireSector) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	op := pricing.AttributedOperator(c.IsIncludedInPackage, c.TourOperatorID, mainOperator)
	tag, err := q.Exec(ctx,
		`UPDATE car_hire_sectors
		 SET tour_operator_id=$1, cost=$2, commission=$3, is_included_in_package=$4,
		     car_type=$5, pickup_location=$6, dropoff_location=$7,
		     pickup_date_time=$8, dropoff_date_time=$9, reference_number=$10
		 WHERE id=$11 AND `+col+`=$12`,
		op, c.Cost, c.Commission, c.IsIncludedInPackage,
		c.CarType, c.PickupLocation, c.DropoffLocation,
		c.PickupDateTime, c.DropoffDateTime, c.ReferenceNumber,
		c.ID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict("car hire sector %d no longer exists", c.ID)
	}
	return nil
}

func (r *SectorRepository) DeleteCarHires(ctx context.Context, q DBTX, owner models.SectorOwner, ids []int) error {
	return r.deleteRows(ctx, q, "car_hire_sectors", owner, ids)
}

// ---- Attraction tickets ----

func (r *SectorRepository) ListTickets(ctx context.Context, q DBTX, owner models.SectorOwner) ([]models.AttractionTicketSector, error) {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx,
		`SELECT id, quote_id, booking_id, tour_operator_id, cost, commission, is_included_in_package,
		        name, ticket_date, quantity
		 FROM attraction_ticket_sectors WHERE `+col+`=$1 ORDER BY ticket_date NULLS LAST, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AttractionTicketSector
	for rows.Next() {
		var a models.AttractionTicketSector
		if err := rows.Scan(&a.ID, &a.QuoteID, &a.BookingID, &a.TourOperatorID, &a.Cost, &a.Commission,
			&a.IsIncludedInPackage, &a.Name, &a.TicketDate, &a.Quantity); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SectorRepository) InsertTickets(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, items []models.AttractionTicketSector) error {
	if _, _, err := ownerClause(owner); err != nil {
		return err
	}
	for i := range items {
		a := &items[i]
		op := pricing.AttributedOperator(a.IsIncludedInPackage, a.TourOperatorID, mainOperator)
		err := q.QueryRow(ctx,
			`INSERT INTO attraction_ticket_sectors(quote_id, booking_id, tour_operator_id, cost,
			                                       commission, is_included_in_package, name,
			                                       ticket_date, quantity)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			 RETURNING id`,
			owner.QuoteID, owner.BookingID, op, a.Cost, a.Commission,
			a.IsIncludedInPackage, a.Name, a.TicketDate, a.Quantity,
		).Scan(&a.ID)
		if err != nil {
			return err
		}
		a.TourOperatorID = op
		a.QuoteID, a.BookingID = owner.QuoteID, owner.BookingID
	}
	return nil
}

func (r *SectorRepository) UpdateTicket(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, a models.AttractionTicketSector) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	op := pricing.AttributedOperator(a.IsIncludedInPackage, a.TourOperatorID, mainOperator)
	tag, err := q.Exec(ctx,
		`UPDATE attraction_ticket_sectors
		 SET tour_operator_id=$1, cost=$2, commission=$3, is_included_in_package=$4,
		     name=$5, ticket_date=$6, quantity=$7
		 WHERE id=$8 AND `+col+`=$9`,
		op, a.Cost, a.Commission, a.IsIncludedInPackage,
		a.Name, a.TicketDate, a.Quantity,
		a.ID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict("attraction ticket sector %d no longer exists", a.ID)
	}
	return nil
}

func (r *SectorRepository) DeleteTickets(ctx context.Context, q DBTX, owner models.SectorOwner, ids []int) error {
	return r.deleteRows(ctx, q, "attraction_ticket_sectors", owner, ids)
}

// ---- Lounge passes ----

func (r *SectorRepository) ListLoungePasses(ctx context.Context, q DBTX, owner models.SectorOwner) ([]models.LoungePassSector, error) {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx,
		`SELECT id, quote_id, booking_id, tour_operator_id, cost, commission, is_included_in_package,
		        airport_id, lounge_name, lounge_date
		 FROM lounge_pass_sectors WHERE `+col+`=$1 ORDER BY lounge_date NULLS LAST, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LoungePassSector
	for rows.Next() {
		var l models.LoungePassSector
		if err := rows.Scan(&l.ID, &l.QuoteID, &l.BookingID, &l.TourOperatorID, &l.Cost, &l.Commission,
			&l.IsIncludedInPackage, &l.AirportID, &l.LoungeName, &l.LoungeDate); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *SectorRepository) InsertLoungePasses(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, items []models.LoungePassSector) error {
	if _, _, err := ownerClause(owner); err != nil {
		return err
	}
	for i := range items {
		l := &items[i]
		op := pricing.AttributedOperator(l.IsIncludedInPackage, l.TourOperatorID, mainOperator)
		err := q.QueryRow(ctx,
			`INSERT INTO lounge_pass_sectors(quote_id, booking_id, tour_operator_id, cost, commission,
			                                 is_included_in_package, airport_id, lounge_name, lounge_date)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			 RETURNING id`,
			owner.QuoteID, owner.BookingID, op, l.Cost, l.Commission,
			l.IsIncludedInPackage, l.AirportID, l.LoungeName, l.LoungeDate,
		).Scan(&l.ID)
		if err != nil {
			return err
		}
		l.TourOperatorID = op
		l.QuoteID, l.BookingID = owner.QuoteID, owner.BookingID
	}
	return nil
}

func (r *SectorRepository) UpdateLoungePass(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, l models.LoungePassSector) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	op := pricing.AttributedOperator(l.IsIncludedInPackage, l.TourOperatorID, mainOperator)
	tag, err := q.Exec(ctx,
		`UPDATE lounge_pass_sectors
		 SET tour_operator_id=$1, cost=$2, commission=$3, is_included_in_package=$4,
		     airport_id=$5, lounge_name=$6, lounge_date=$7
		 WHERE id=$8 AND `+col+`=$9`,
		op, l.Cost, l.Commission, l.IsIncludedInPackage,
		l.AirportID, l.LoungeName, l.LoungeDate,
		l.ID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict("lounge pass sector %d no longer exists", l.ID)
	}
	return nil
}

func (r *SectorRepository) DeleteLoungePasses(ctx context.Context, q DBTX, owner models.SectorOwner, ids []int) error {
	return r.deleteRows(ctx, q, "lounge_pass_sectors", owner, ids)
}

// ---- Airport parking ----

func (r *SectorRepository) ListParking(ctx context.Context, q DBTX, owner models.SectorOwner) ([]models.AirportParkingSector, error) {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx,
		`SELECT id, quote_id, booking_id, tour_operator_id, cost, commission, is_included_in_package,
		        airport_id, car_registration, start_date_time, end_date_time, reference_number
		 FROM airport_parking_sectors WHERE `+col+`=$1 ORDER BY start_date_time NULLS LAST, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AirportParkingSector
	for rows.Next() {
		var p models.AirportParkingSector
		if err := rows.Scan(&p.ID, &p.QuoteID, &p.BookingID, &p.TourOperatorID, &p.Cost, &p.Commission,
			&p.IsIncludedInPackage, &p.AirportID, &p.CarRegistration,
			&p.StartDateTime, &p.EndDateTime, &p.ReferenceNumber); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SectorRepository) InsertParking(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, items []models.AirportParkingSector) error {
	if _, _, err := ownerClause(owner); err != nil {
		return err
	}
	for i := range items {
		p := &items[i]
		op := pricing.AttributedOperator(p.IsIncludedInPackage, p.TourOperatorID, mainOperator)
		err := q.QueryRow(ctx,
			`INSERT INTO airport_parking_sectors(quote_id, booking_id, tour_operator_id, cost,
			                                     commission, is_included_in_package, airport_id,
			                                     car_registration, start_date_time, end_date_time,
			                                     reference_number)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			 RETURNING id`,
			owner.QuoteID, owner.BookingID, op, p.Cost, p.Commission,
			p.IsIncludedInPackage, p.AirportID, p.CarRegistration,
			p.StartDateTime, p.EndDateTime, p.ReferenceNumber,
		).Scan(&p.ID)
		if err != nil {
			return err
		}
		p.TourOperatorID = op
		p.QuoteID, p.BookingID = owner.QuoteID, owner.BookingID
	}
	return nil
}

func (r *SectorRepository) UpdateParking(ctx context.Context, q DBTX, owner models.SectorOwner, mainOperator *int, p models.AirportParkingSector) error {
	col, ownerID, err := ownerClause(owner)
	if err != nil {
		return err
	}
	op := pricing.AttributedOperator(p.IsIncludedInPackage, p.TourOperatorID, mainOperator)
	tag, err := q.Exec(ctx,
		`UPDATE airport_parking_sectors
		 SET tour_operator_id=$1, cost=$2, commission=$3, is_included_in_package=$4,
		     airport_id=$5, car_registration=$6, start_date_time=$7, end_date_time=$8,
		     reference_number=$9
		 WHERE id=$10 AND `+col+`=$11`,
		op, p.Cost, p.Commission, p.IsIncludedInPackage,
		p.AirportID, p.CarRegistration, p.StartDateTime, p.EndDateTime, p.ReferenceNumber,
		p.ID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict("airport parking sector %d no longer exists", p.ID)
	}
	return nil
}

func (r *SectorRepository) DeleteParking(ctx context.Context, q DBTX, owner models.SectorOwner, ids []int) error {
	return r.deleteRows(ctx, q, "airport_parking_sectors", owner, ids)
}
