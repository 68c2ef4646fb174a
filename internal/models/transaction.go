package models

import "time"

// TransactionStatus is the lifecycle phase of a sales transaction.
// The three phases are mutually exclusive: a transaction owns exactly
// one live phase child (enquiry row, quote set, or booking row).
type TransactionStatus string

const (
	StatusOnEnquiry TransactionStatus = "on_enquiry"
	StatusOnQuote   TransactionStatus = "on_quote"
	StatusOnBooking TransactionStatus = "on_booking"
)

// Holiday types. Cruise holidays carry a cruise record with itinerary
// and extras on top of the regular sectors.
const (
	HolidayTypePackage  = "package"
	HolidayTypeCruise   = "cruise"
	HolidayTypeTailor   = "tailor_made"
	HolidayTypeFlightOnly = "flight_only"
)

// Transaction is the aggregate root for one customer sales interaction,
// from first enquiry through quotes to a final booking.
type Transaction struct {
	ID          int               `json:"id"`
	Status      TransactionStatus `json:"status"`
	ClientID    int               `json:"client_id"`
	AgentID     int               `json:"agent_id"`
	LeadSource  string            `json:"lead_source"`
	HolidayType *string           `json:"holiday_type,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ValidStatus reports whether s is one of the three known phases.
func ValidStatus(s TransactionStatus) bool {
	switch s {
	case StatusOnEnquiry, StatusOnQuote, StatusOnBooking:
		return true
	}
	return false
}
