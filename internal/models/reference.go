package models

// Reference data consumed read-only by the pipeline: lookups for the
// booking form dropdowns. Maintained elsewhere; this core never writes
// these tables.

type Airport struct {
	ID       int    `json:"id"`
	Code     string `json:"code"` // IATA
	Name     string `json:"name"`
	Country  string `json:"country"`
}

type TourOperator struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type CruiseLine struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Client struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
