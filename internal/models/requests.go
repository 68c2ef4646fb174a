package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEnquiryRequest is the payload for opening a new enquiry. Pure
// creation: the transaction, the enquiry row and the reference-data
// selections are inserted together, no reconciliation involved.
type CreateEnquiryRequest struct {
	ClientID    int     `json:"client_id"`
	AgentID     int     `json:"agent_id"`
	LeadSource  string  `json:"lead_source"`
	HolidayType *string `json:"holiday_type,omitempty"`

	Adults     int     `json:"adults"`
	Children   int     `json:"children"`
	Infants    int     `json:"infants"`
	NoOfNights int     `json:"no_of_nights"`
	Budget     *string `json:"budget,omitempty"`
	Notes      string  `json:"notes"`

	IsFutureDeal   bool       `json:"is_future_deal"`
	FutureDealDate *time.Time `json:"future_deal_date,omitempty"`
	DateExpiry     *time.Time `json:"date_expiry,omitempty"`
	DepartureDate  *time.Time `json:"departure_date,omitempty"`

	DestinationIDs      []int `json:"destination_ids,omitempty"`
	DepartureAirportIDs []int `json:"departure_airport_ids,omitempty"`
	DeparturePortIDs    []int `json:"departure_port_ids,omitempty"`
	CruiseLineIDs       []int `json:"cruise_line_ids,omitempty"`
	BoardBasisIDs       []int `json:"board_basis_ids,omitempty"`
	ResortIDs           []int `json:"resort_ids,omitempty"`
	AccommodationIDs    []int `json:"accommodation_ids,omitempty"`
}

// HolidayDetails is the mutation envelope shared by quote and booking
// writes: the phase entity's scalar fields plus the nested sector lists
// the reconciler works through. Sector items reuse the row structs; an
// item without an id is an insert, an item with one targets the
// persisted row.
type HolidayDetails struct {
	HolidayType        string          `json:"holiday_type"`
	MainTourOperatorID *int            `json:"main_tour_operator_id,omitempty"`
	SalesPrice         decimal.Decimal `json:"sales_price"`
	Commission         decimal.Decimal `json:"commission"`
	Discount           decimal.Decimal `json:"discount"`
	ServiceCharge      decimal.Decimal `json:"service_charge"`
	Adults             int             `json:"adults"`
	Children           int             `json:"children"`
	Infants            int             `json:"infants"`
	NoOfNights         int             `json:"no_of_nights"`
	TransferType       *string         `json:"transfer_type,omitempty"`

	// Package holidays: primary accommodation from top-level fields.
	AccommodationID  *int       `json:"accomodation_id,omitempty"`
	MainBoardBasisID *int       `json:"main_board_basis_id,omitempty"`
	RoomType         *string    `json:"room_type,omitempty"`
	CheckInDateTime  *time.Time `json:"check_in_date_time,omitempty"`

	// Cruise holidays.
	CruiseLineID     *int                 `json:"cruise_line,omitempty"`
	CruiseShipID     *int                 `json:"cruise_ship,omitempty"`
	CruiseDate       *time.Time           `json:"cruise_date,omitempty"`
	CabinType        *string              `json:"cabin_type,omitempty"`
	CabinNumber      *string              `json:"cabin_number,omitempty"`
	CruiseCost       decimal.Decimal      `json:"cruise_cost"`
	CruiseCommission decimal.Decimal      `json:"cruise_commission"`
	Voyages          []CruiseItineraryDay `json:"voyages,omitempty"`
	CruiseExtras     []CruiseExtra        `json:"booking_cruise_extra,omitempty"`

	Hotels            []HotelSector            `json:"hotels,omitempty"`
	Flights           []FlightSector           `json:"flights,omitempty"`
	Transfers         []TransferSector         `json:"transfers,omitempty"`
	CarHires          []CarHireSector          `json:"car_hire,omitempty"`
	AttractionTickets []AttractionTicketSector `json:"attraction_tickets,omitempty"`
	AirportParking    []AirportParkingSector   `json:"airport_parking,omitempty"`
	LoungePasses      []LoungePassSector       `json:"lounge_pass,omitempty"`
	Passengers        []Passenger              `json:"passengers,omitempty"`

	Referral *ReferralInput `json:"referral,omitempty"`
}

// IsCruise reports whether the payload describes a cruise holiday.
func (h *HolidayDetails) IsCruise() bool { return h.HolidayType == HolidayTypeCruise }

// SaveQuoteRequest creates or updates a quote. TransactionID nil means a
// brand-new transaction is opened with the quote.
type SaveQuoteRequest struct {
	TransactionID *int   `json:"transaction_id,omitempty"`
	ClientID      int    `json:"client_id"`
	AgentID       int    `json:"agent_id"`
	LeadSource    string `json:"lead_source"`

	IsFutureDeal   bool       `json:"is_future_deal"`
	FutureDealDate *time.Time `json:"future_deal_date,omitempty"`
	DateExpiry     *time.Time `json:"date_expiry,omitempty"`

	HolidayDetails
}

// SaveBookingRequest creates or updates a booking, and doubles as the
// payload for converting a quote: booking sectors are inserted fresh
// from this payload, never copied from the quote rows.
type SaveBookingRequest struct {
	TransactionID    *int    `json:"transaction_id,omitempty"`
	ClientID         int     `json:"client_id"`
	AgentID          int     `json:"agent_id"`
	LeadSource       string  `json:"lead_source"`
	BookingReference *string `json:"booking_reference,omitempty"`

	HolidayDetails
}
