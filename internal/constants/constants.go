package constants

import "time"

const (
	// Geographic search radius applied when the client supplies a
	// latitude/longitude pair. Converted to an approximate degree
	// radius at ~111 km per degree for ST_DWithin.
	SearchRadiusKm    = 1000.0
	KmPerDegree       = 111.0
	SearchRadiusInDeg = SearchRadiusKm / KmPerDegree

	// A lease created at application or approval time runs one year
	// from its start date.
	LeaseTermYears = 1

	// Cron spec for the nightly payment sweep (overdue marking and
	// next-cycle payment generation).
	PaymentSweepCronSpec   = "15 0 * * *"
	PaymentSweepJobTimeout = 10 * time.Minute
)
