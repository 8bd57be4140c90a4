package models

import "time"

// Counters is the singleton about-counting record shown on the dashboard.
// At most one live record exists; it is created by the first write and
// mutated in place by every subsequent one.
type Counters struct {
	// ID is the well-known identifier of the singleton row.
	ID uint
	// Partners is the number of partner entities.
	Partners int
	// Booking is the number of bookings.
	Booking int
	// CreatedAt records the timestamp of the first insert.
	CreatedAt time.Time
	// UpdatedAt records the timestamp of the last write.
	UpdatedAt time.Time
}
