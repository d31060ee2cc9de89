package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Booking is a confirmed stay over the half-open range [CheckIn, CheckOut).
// CheckOut is the first day free for the next guest; it is never blocked on
// the calendar. For one property, confirmed non-deleted bookings must be
// pairwise non-overlapping — the repository enforces this at write time.
type Booking struct {
	ID         int32         `json:"id"`
	PropertyID int32         `json:"property_id"`
	Reference  string        `json:"reference"`
	CheckIn    time.Time     `json:"check_in"`
	CheckOut   time.Time     `json:"check_out"`
	Guest      Guest         `json:"guest"`
	TotalCents int64         `json:"total_cents"`
	Status     BookingStatus `json:"status"`
	CreatedOn  time.Time     `json:"created_on"`
	UpdatedOn  time.Time     `json:"updated_on"`
	DeletedOn  *time.Time    `json:"deleted_on,omitempty"`
}

// Nights returns the number of nights stayed, i.e. the length of
// [CheckIn, CheckOut).
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Overlaps reports whether the booking intersects [from, to). Two half-open
// ranges [a,b) and [c,d) intersect iff a < d && c < b, so back-to-back stays
// sharing a checkout/check-in day do not conflict.
func (b *Booking) Overlaps(from, to time.Time) bool {
	return b.CheckIn.Before(to) && from.Before(b.CheckOut)
}
