package models

// Passenger types.
const (
	PassengerTypeAdult  = "adult"
	PassengerTypeChild  = "child"
	PassengerTypeInfant = "infant"
)

// Passenger belongs to exactly one of a quote, a booking, or a lounge
// pass. At most one owner id may be set; the store rejects rows with
// two. Passengers carry no stable client-side identity, so writes
// replace the owner's whole set.
type Passenger struct {
	ID           int    `json:"id,omitempty"`
	QuoteID      *int   `json:"quote_id,omitempty"`
	BookingID    *int   `json:"booking_id,omitempty"`
	LoungePassID *int   `json:"lounge_pass_id,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Age          *int   `json:"age,omitempty"`
	Type         string `json:"type"`
}

// OwnerCount returns how many owner ids are set.
func (p *Passenger) OwnerCount() int {
	n := 0
	if p.QuoteID != nil {
		n++
	}
	if p.BookingID != nil {
		n++
	}
	if p.LoungePassID != nil {
		n++
	}
	return n
}
