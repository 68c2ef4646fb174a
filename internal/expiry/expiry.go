// Package expiry implements the expiry and future-deal date policy for
// enquiries and quotes. Pure functions over an injected clock so the
// rules are testable without touching the store.
package expiry

import "time"

const (
	// DefaultTTL is how long a fresh enquiry/quote stays live when the
	// caller supplies no expiry date.
	DefaultTTL = 24 * time.Hour
	// ReactivateTTL is the expiry window granted when a future deal is
	// switched back to normal tracking.
	ReactivateTTL = 7 * 24 * time.Hour
	// SnoozeBump is how far date_created moves forward on a status
	// change, pushing a reactivated lead back toward the top of a
	// recency-sorted list.
	SnoozeBump = 48 * time.Hour
)

// OnCreate resolves the expiry fields for a new enquiry or quote.
// Future deals are exempt from expiry tracking until their stored date;
// everything else expires at the supplied date or now+24h.
func OnCreate(now time.Time, isFutureDeal bool, futureDealDate, suppliedExpiry *time.Time) (dateExpiry, storedFutureDate *time.Time) {
	if isFutureDeal {
		return nil, futureDealDate
	}
	if suppliedExpiry != nil {
		return suppliedExpiry, nil
	}
	d := now.Add(DefaultTTL)
	return &d, nil
}

// OnUnsetFutureDeal returns the expiry date written when a future deal
// re-enters normal expiry tracking.
func OnUnsetFutureDeal(now time.Time) time.Time {
	return now.Add(ReactivateTTL)
}

// Expired reports whether a date_expiry has passed. Derived on read; no
// write path stores the flag.
func Expired(now time.Time, dateExpiry *time.Time) bool {
	return dateExpiry != nil && dateExpiry.Before(now)
}

// Snooze returns the bumped date_created applied when a lead's status
// changes to anything but LOST.
func Snooze(dateCreated time.Time) time.Time {
	return dateCreated.Add(SnoozeBump)
}
