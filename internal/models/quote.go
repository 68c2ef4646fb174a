package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a priced proposal against a transaction. One quote per
// transaction is flagged primary; further quotes are secondary/add-on
// quotes sharing the same transaction.
type Quote struct {
	ID                 int             `json:"id"`
	TransactionID      int             `json:"transaction_id"`
	IsPrimary          bool            `json:"is_primary"`
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

	// Package-holiday fields. The primary accommodation of a package is
	// entered at this level, not as a hotel sector.
	AccommodationID  *int       `json:"accomodation_id,omitempty"`
	MainBoardBasisID *int       `json:"main_board_basis_id,omitempty"`
	RoomType         *string    `json:"room_type,omitempty"`
	CheckInDateTime  *time.Time `json:"check_in_date_time,omitempty"`

	IsFutureDeal   bool       `json:"is_future_deal"`
	FutureDealDate *time.Time `json:"future_deal_date,omitempty"`
	DateExpiry     *time.Time `json:"date_expiry,omitempty"`

	DateCreated time.Time  `json:"date_created"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// IsExpired is derived on read from date_expiry; no write path stores it.
func (q *Quote) IsExpired(now time.Time) bool {
	return q.DateExpiry != nil && q.DateExpiry.Before(now)
}

// QuoteDetail is the full read shape for a quote: the quote row, its
// sectors, passengers, cruise record and derived money summary.
type QuoteDetail struct {
	Quote       Quote                    `json:"quote"`
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

// MoneySummary carries the derived commission/cost figures. Referrer and
// final commission only appear when a referral exists; they are computed
// on read and never persisted.
type MoneySummary struct {
	OverallCommission  decimal.Decimal  `json:"overall_commission"`
	OverallCost        decimal.Decimal  `json:"overall_cost"`
	ReferrerCommission *decimal.Decimal `json:"referrer_commission,omitempty"`
	FinalCommission    *decimal.Decimal `json:"final_commission,omitempty"`
}
