package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SectorOwner identifies the phase entity a sector row belongs to.
// Exactly one of QuoteID / BookingID is set; the store enforces the
// exclusivity with a CHECK constraint.
type SectorOwner struct {
	QuoteID   *int
	BookingID *int
}

func QuoteOwner(id int) SectorOwner   { return SectorOwner{QuoteID: &id} }
func BookingOwner(id int) SectorOwner { return SectorOwner{BookingID: &id} }

// SectorBase carries the fields every sector type shares. Client
// payloads reuse the row structs directly: ID 0 marks a new row, a
// non-zero ID targets an existing one.
type SectorBase struct {
	ID                  int             `json:"id,omitempty"`
	QuoteID             *int            `json:"quote_id,omitempty"`
	BookingID           *int            `json:"booking_id,omitempty"`
	TourOperatorID      *int            `json:"tour_operator_id,omitempty"`
	Cost                decimal.Decimal `json:"cost"`
	Commission          decimal.Decimal `json:"commission"`
	IsIncludedInPackage bool            `json:"is_included_in_package"`
}

// RowID satisfies reconcile.Identifiable.
func (s SectorBase) RowID() int { return s.ID }

type FlightSector struct {
	SectorBase
	DepartingAirportID int        `json:"departing_airport_id"`
	ArrivalAirportID   int        `json:"arrival_airport_id"`
	DepartureDateTime  time.Time  `json:"departure_date_time"`
	ArrivalDateTime    time.Time  `json:"arrival_date_time"`
	FlightNumber       *string    `json:"flight_number,omitempty"`
	Airline            *string    `json:"airline,omitempty"`
}

type HotelSector struct {
	SectorBase
	AccommodationID *int       `json:"accommodation_id,omitempty"`
	Name            string     `json:"name"`
	BoardBasisID    *int       `json:"board_basis_id,omitempty"`
	RoomType        *string    `json:"room_type,omitempty"`
	CheckInDateTime *time.Time `json:"check_in_date_time,omitempty"`
	Nights          int        `json:"nights"`
}

type TransferSector struct {
	SectorBase
	TransferType    string     `json:"transfer_type"`
	PickupLocation  string     `json:"pickup_location"`
	DropoffLocation string     `json:"dropoff_location"`
	PickupDateTime  *time.Time `json:"pickup_date_time,omitempty"`
}

type CarHireSector struct {
	SectorBase
	CarType         *string    `json:"car_type,omitempty"`
	PickupLocation  string     `json:"pickup_location"`
	DropoffLocation string     `json:"dropoff_location"`
	PickupDateTime  *time.Time `json:"pickup_date_time,omitempty"`
	DropoffDateTime *time.Time `json:"dropoff_date_time,omitempty"`
	ReferenceNumber *string    `json:"reference_number,omitempty"`
}

type AttractionTicketSector struct {
	SectorBase
	Name       string     `json:"name"`
	TicketDate *time.Time `json:"ticket_date,omitempty"`
	Quantity   int        `json:"quantity"`
}

type LoungePassSector struct {
	SectorBase
	AirportID  *int       `json:"airport_id,omitempty"`
	LoungeName string     `json:"lounge_name"`
	LoungeDate *time.Time `json:"lounge_date,omitempty"`
}

type AirportParkingSector struct {
	SectorBase
	AirportID       *int       `json:"airport_id,omitempty"`
	CarRegistration *string    `json:"car_registration,omitempty"`
	StartDateTime   *time.Time `json:"start_date_time,omitempty"`
	EndDateTime     *time.Time `json:"end_date_time,omitempty"`
	ReferenceNumber *string    `json:"reference_number,omitempty"`
}
