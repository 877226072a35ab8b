package services

import "time"

// NextPaymentDate returns the first monthly anniversary of start that is
// strictly after now. Pure; used for display on approved applications.
func NextPaymentDate(start, now time.Time) time.Time {
	next := start
	for !next.After(now) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}
