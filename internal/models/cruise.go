package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cruise is the cruise record a cruise-type quote/booking owns. The
// itinerary days and extras are non-identified lists: the client never
// sends row ids for them, so writes replace the whole set.
type Cruise struct {
	ID            int             `json:"id"`
	QuoteID       *int            `json:"quote_id,omitempty"`
	BookingID     *int            `json:"booking_id,omitempty"`
	CruiseLineID  *int            `json:"cruise_line_id,omitempty"`
	CruiseShipID  *int            `json:"cruise_ship_id,omitempty"`
	CruiseDate    *time.Time      `json:"cruise_date,omitempty"`
	CabinType     *string         `json:"cabin_type,omitempty"`
	CabinNumber   *string         `json:"cabin_number,omitempty"`
	Cost          decimal.Decimal `json:"cost"`
	Commission    decimal.Decimal `json:"commission"`
}

// CruiseItineraryDay is one day of the voyage description.
type CruiseItineraryDay struct {
	ID          int     `json:"id,omitempty"`
	CruiseID    int     `json:"cruise_id,omitempty"`
	Day         int     `json:"day"`
	PortID      *int    `json:"port_id,omitempty"`
	Description string  `json:"description"`
}

// CruiseExtra is a linked extra sold with the cruise (drinks package,
// shore excursion, gratuities and the like).
type CruiseExtra struct {
	ID         int             `json:"id,omitempty"`
	CruiseID   int             `json:"cruise_id,omitempty"`
	Name       string          `json:"name"`
	Cost       decimal.Decimal `json:"cost"`
	Commission decimal.Decimal `json:"commission"`
}

// CruiseDetail bundles the cruise row with its owned lists.
type CruiseDetail struct {
	Cruise    Cruise               `json:"cruise"`
	Itinerary []CruiseItineraryDay `json:"voyages"`
	Extras    []CruiseExtra        `json:"extras"`
}
