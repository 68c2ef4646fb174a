package models

import "time"

// Enquiry statuses. EXPIRED and LOST are terminal; everything else is a
// working state the agent moves the lead through.
const (
	EnquiryStatusNew       = "NEW"
	EnquiryStatusContacted = "CONTACTED"
	EnquiryStatusQuoted    = "QUOTED"
	EnquiryStatusLost      = "LOST"
	EnquiryStatusExpired   = "EXPIRED"
)

type Enquiry struct {
	ID             int        `json:"id"`
	TransactionID  int        `json:"transaction_id"`
	Status         string     `json:"status"`
	Adults         int        `json:"adults"`
	Children       int        `json:"children"`
	Infants        int        `json:"infants"`
	NoOfNights     int        `json:"no_of_nights"`
	Budget         *string    `json:"budget,omitempty"`
	Notes          string     `json:"notes"`
	IsFutureDeal   bool       `json:"is_future_deal"`
	FutureDealDate *time.Time `json:"future_deal_date,omitempty"`
	DateExpiry     *time.Time `json:"date_expiry,omitempty"`
	DepartureDate  *time.Time `json:"departure_date,omitempty"`
	DateCreated    time.Time  `json:"date_created"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`

	// Reference-data selections captured with the enquiry. Simple child
	// rows, created once with the enquiry.
	DestinationIDs      []int `json:"destination_ids,omitempty"`
	DepartureAirportIDs []int `json:"departure_airport_ids,omitempty"`
	DeparturePortIDs    []int `json:"departure_port_ids,omitempty"`
	CruiseLineIDs       []int `json:"cruise_line_ids,omitempty"`
	BoardBasisIDs       []int `json:"board_basis_ids,omitempty"`
	ResortIDs           []int `json:"resort_ids,omitempty"`
	AccommodationIDs    []int `json:"accommodation_ids,omitempty"`
}

// IsExpired is derived on read; it is never stored.
func (e *Enquiry) IsExpired(now time.Time) bool {
	return e.Status == EnquiryStatusExpired
}

// ValidEnquiryStatus reports whether s is a known enquiry status.
func ValidEnquiryStatus(s string) bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusContacted, EnquiryStatusQuoted,
		EnquiryStatusLost, EnquiryStatusExpired:
		return true
	}
	return false
}
