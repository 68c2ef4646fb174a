package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is the confirmed sale. Bookings are only ever soft-deleted;
// there is no transition back to a quote.
type Booking struct {
	ID                 int             `json:"id"`
	TransactionID      int             `json:"transaction_id"`
	BookingReference   *string         `json:"booking_reference,omitempty"`
	HolidayType        string          `json:"holiday_type"`
	MainTourOperatorID *int            `json:"main_tour_operator_id,omitempty"`
	SalesPrice         decimal.Decimal `json:"sales_price"`
	PackageCommission  decimal.Decimal `json:"commission"`
	Discount           decimal.Decimal `json:"discount"`
	ServiceCharge      decimal.Decimal `json:"service_charge"`
	Adults             int             `json:"adults"`
	Children           int             `json:"children"`
	Infants            int             `json:"infants"`
	NoOfNights         int             `json:"no_of_nights"`
	TransferType       *string         `json:"transfer_type,omitempty"`

	AccommodationID  *int       `json:"accomodation_id,omitempty"`
	MainBoardBasisID *int       `json:"main_board_basis_id,omitempty"`
	RoomType         *string    `json:"room_type,omitempty"`
	CheckInDateTime  *time.Time `json:"check_in_date_time,omitempty"`

	DateCreated time.Time  `json:"date_created"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// BookingDetail is the full read shape for a booking.
type BookingDetail struct {
	Booking     Booking                  `json:"booking"`
	Transaction Transaction              `json:"transaction"`
	Hotels      []HotelSector            `json:"hotels"`
	Flights     []FlightSector           `json:"flights"`
	Transfers   []TransferSector         `json:"transfers"`
	CarHires    []CarHireSector          `json:"car_hire"`
	Tickets     []AttractionTicketSector `json:"attraction_tickets"`
	LoungePasses []LoungePassSector      `json:"lounge_pass"`
	Parking     []AirportParkingSector   `json:"airport_parking"`
	Passengers  []Passenger              `json:"passengers"`
	Cruise      *CruiseDetail            `json:"cruise,omitempty"`
	Referral    *Referral                `json:"referral,omitempty"`
	Money       MoneySummary             `json:"money"`
}
