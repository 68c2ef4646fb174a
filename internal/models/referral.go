package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Referral records who referred the client and the share of the final
// commission they earn. One per transaction. The split itself is
// computed on read, never stored.
type Referral struct {
	ID                  int             `json:"id"`
	TransactionID       int             `json:"transaction_id"`
	ReferrerID          int             `json:"referrer_id"`
	PotentialCommission decimal.Decimal `json:"potential_commission"` // percentage 0-100
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ReferralInput is the referral block of a quote/booking mutation.
type ReferralInput struct {
	ReferrerID          int             `json:"referrer_id"`
	PotentialCommission decimal.Decimal `json:"potential_commission"`
}
